package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/repository/memory"
)

const csvHeader = "incident_id,date,region,channel,severity_level,category,subsystem,root_cause,sla_breached,time_to_resolve_hours,financial_impact_usd,is_repeated_incident\n"

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "incidents.csv")
	gt.NoError(t, os.WriteFile(path, []byte(csvHeader+body), 0o600)).Required()
	return path
}

// sampleIncidents covers two regions, two categories and one SLA breach per region
func sampleIncidents() []*model.Incident {
	return []*model.Incident{
		{ID: "INC-1", Date: day("2024-01-01"), Region: "EMEA", Channel: "Online", Severity: "High", Category: "Payments", Subsystem: "Core", RootCause: "Bug", SLABreached: true, ResolutionHours: 10, FinancialImpact: 1000},
		{ID: "INC-2", Date: day("2024-01-02"), Region: "EMEA", Channel: "Branch", Severity: "Low", Category: "Cards", Subsystem: "Gateway", RootCause: "Config", ResolutionHours: 2, FinancialImpact: 200, Repeated: true},
		{ID: "INC-3", Date: day("2024-01-03"), Region: "APAC", Channel: "Online", Severity: "High", Category: "Payments", Subsystem: "Core", RootCause: "Bug", ResolutionHours: 6, FinancialImpact: 500},
		{ID: "INC-4", Date: day("2024-01-04"), Region: "APAC", Channel: "Online", Severity: "Medium", Category: "Payments", Subsystem: "Gateway", RootCause: "Vendor", SLABreached: true, ResolutionHours: 4, FinancialImpact: 300},
	}
}

func seedRepository(t *testing.T, snapshotID string) *memory.Memory {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	gt.NoError(t, repo.Incident().SaveMany(ctx, sampleIncidents())).Required()
	gt.NoError(t, repo.Incident().SaveMetadata(ctx, &model.DatasetMetadata{
		SnapshotID:  snapshotID,
		RecordCount: len(sampleIncidents()),
	})).Required()
	return repo
}
