package types

import (
	"fmt"
	"strings"
)

// SLASelection is the three-way SLA breach selector of the dashboard filter
type SLASelection string

const (
	SLAAll SLASelection = "All"
	SLAYes SLASelection = "Yes"
	SLANo  SLASelection = "No"
)

// AllSLASelections returns all valid selections
func AllSLASelections() []SLASelection {
	return []SLASelection{SLAAll, SLAYes, SLANo}
}

// IsValid checks if the selection is valid
func (s SLASelection) IsValid() bool {
	switch s {
	case SLAAll, SLAYes, SLANo:
		return true
	default:
		return false
	}
}

// Normalize treats empty as SLAAll
func (s SLASelection) Normalize() SLASelection {
	if s == "" {
		return SLAAll
	}
	return s
}

// Matches reports whether an incident with the given breach flag passes the selection
func (s SLASelection) Matches(breached bool) bool {
	switch s.Normalize() {
	case SLAYes:
		return breached
	case SLANo:
		return !breached
	default:
		return true
	}
}

// String returns the string representation of the selection
func (s SLASelection) String() string {
	return string(s)
}

// ParseSLASelection parses a string case-insensitively. Empty means All.
func ParseSLASelection(s string) (SLASelection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SLAAll, nil
	case "yes":
		return SLAYes, nil
	case "no":
		return SLANo, nil
	default:
		return "", fmt.Errorf("invalid SLA selection: %s", s)
	}
}

// YesNoLabel renders a breach flag the way the incident dataset stores it
func YesNoLabel(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
