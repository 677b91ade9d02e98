package cli_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/cli"
)

const csvHeader = "incident_id,date,region,channel,severity_level,category,subsystem,root_cause,sla_breached,time_to_resolve_hours,financial_impact_usd,is_repeated_incident\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func writeDataset(t *testing.T) string {
	return writeFile(t, "incidents.csv", csvHeader+
		"INC-1,2024-01-01,EMEA,Online,High,Payments,Core,Bug,Yes,10,1000,No\n"+
		"INC-2,2024-01-02,APAC,Branch,Low,Cards,Gateway,Config,No,2,200,Yes\n")
}

func run(args ...string) error {
	return cli.Run(context.Background(), append([]string{"opsboard", "--log-output", "stderr"}, args...), "test")
}

func TestRun_ValidateCommand(t *testing.T) {
	t.Run("valid inputs", func(t *testing.T) {
		cfg := writeFile(t, "opsboard.toml", `title = "Ops"`)
		gt.NoError(t, run("validate", "--config", cfg, "--dataset", writeDataset(t),
			"--churn-model", "../service/churn/testdata/churn_model.json"))
	})

	t.Run("skipped rows pass unless strict", func(t *testing.T) {
		path := writeFile(t, "incidents.csv", csvHeader+
			"INC-1,2024-01-01,EMEA,Online,High,Payments,Core,Bug,Yes,10,1000,No\n"+
			"INC-2,bad-date,APAC,Branch,Low,Cards,Gateway,Config,No,2,200,Yes\n")
		gt.NoError(t, run("validate", "--dataset", path))
		gt.Value(t, run("validate", "--dataset", path, "--strict")).NotNil()
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeFile(t, "incidents.csv", "incident_id,date\nINC-1,2024-01-01\n")
		gt.Value(t, run("validate", "--dataset", path)).NotNil()
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := writeFile(t, "opsboard.toml", "top_incidents = -1")
		gt.Value(t, run("validate", "--config", cfg)).NotNil()
	})

	t.Run("missing config", func(t *testing.T) {
		gt.Value(t, run("validate", "--config", filepath.Join(t.TempDir(), "none.toml"))).NotNil()
	})

	t.Run("broken model", func(t *testing.T) {
		gt.Value(t, run("validate", "--churn-model", "../service/churn/testdata/broken_model.json")).NotNil()
	})
}

func TestRun_LoadCommand(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		gt.NoError(t, run("load", "--dataset", writeDataset(t), "--repository-backend", "memory"))
	})

	t.Run("requires dataset", func(t *testing.T) {
		gt.Value(t, run("load", "--repository-backend", "memory")).NotNil()
	})
}

func TestRun_ReportCommand(t *testing.T) {
	t.Run("filtered report", func(t *testing.T) {
		gt.NoError(t, run("report", "--dataset", writeDataset(t), "--region", "EMEA", "--sla", "Yes"))
	})

	t.Run("bad sla", func(t *testing.T) {
		gt.Value(t, run("report", "--dataset", writeDataset(t), "--sla", "often")).NotNil()
	})

	t.Run("post requires token", func(t *testing.T) {
		gt.Value(t, run("report", "--dataset", writeDataset(t), "--post")).NotNil()
	})

	t.Run("post to slack", func(t *testing.T) {
		var posted atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if strings.HasSuffix(r.URL.Path, "/chat.postMessage") {
				posted.Add(1)
				_, _ = w.Write([]byte(`{"ok":true,"channel":"C0123456789","ts":"1700000000.000100"}`))
				return
			}
			_, _ = w.Write([]byte(`{"ok":false,"error":"unknown_method"}`))
		}))
		defer srv.Close()

		gt.NoError(t, run("report", "--dataset", writeDataset(t), "--post",
			"--slack-bot-token", "xoxb-test",
			"--slack-channel", "C0123456789",
			"--slack-api-url", srv.URL+"/"))
		gt.V(t, posted.Load()).Equal(int32(1))
	})
}

func TestRun_PredictCommand(t *testing.T) {
	t.Run("with model", func(t *testing.T) {
		gt.NoError(t, run("predict", "--churn-model", "../service/churn/testdata/churn_model.json",
			"--tenure", "60", "--contract", "Two year"))
	})

	t.Run("toml model", func(t *testing.T) {
		gt.NoError(t, run("predict", "--churn-model", "../service/churn/testdata/churn_model.toml"))
	})

	t.Run("without model", func(t *testing.T) {
		gt.Value(t, run("predict")).NotNil()
	})

	t.Run("invalid input", func(t *testing.T) {
		gt.Value(t, run("predict", "--churn-model", "../service/churn/testdata/churn_model.json", "--contract", "Weekly")).NotNil()
	})
}

func TestRun_MigrateCommand_RequiresProject(t *testing.T) {
	t.Setenv("OPSBOARD_FIRESTORE_PROJECT_ID", "")
	gt.Value(t, run("migrate")).NotNil()
}
