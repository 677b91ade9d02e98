package slack

import (
	"strings"
	"unicode"
)

// NormalizeChannelName converts a user supplied channel reference such as
// "#Ops Alerts" into a Slack channel name ("ops-alerts").
// Slack allows: lowercase letters, numbers, hyphens, underscores, and Unicode characters
func NormalizeChannelName(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "#"))
	name = strings.ReplaceAll(name, " ", "-")

	var result strings.Builder
	result.Grow(len(name))

	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_':
			result.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			result.WriteRune(unicode.ToLower(r))
		case r > 127 && !isProhibitedSymbol(r):
			result.WriteRune(r)
		}
	}

	name = result.String()
	if len(name) > 80 {
		name = strings.TrimRight(name[:80], "-")
	}
	return name
}

// isProhibitedSymbol checks if a non-ASCII character is prohibited in Slack channel names
func isProhibitedSymbol(r rune) bool {
	switch r {
	case '。', '、', '!', '?', '#', '/':
		return true
	default:
		return false
	}
}

// IsChannelID reports whether ref looks like a Slack conversation ID (e.g. C0123ABCD)
func IsChannelID(ref string) bool {
	if len(ref) < 9 {
		return false
	}
	switch ref[0] {
	case 'C', 'G', 'D':
	default:
		return false
	}
	for _, r := range ref[1:] {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
