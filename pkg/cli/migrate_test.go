package cli_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/cli"
)

func TestGetIndexConfig(t *testing.T) {
	t.Run("default collection", func(t *testing.T) {
		cfg := cli.GetIndexConfig("")
		gt.NoError(t, cfg.Validate())
		gt.A(t, cfg.Collections).Length(1)
		gt.V(t, cfg.Collections[0].Name).Equal("incidents")
	})

	t.Run("prefixed collection", func(t *testing.T) {
		cfg := cli.GetIndexConfig("test")
		gt.V(t, cfg.Collections[0].Name).Equal("test_incidents")
		gt.A(t, cfg.Collections[0].Indexes).Length(1)
		gt.V(t, cfg.Collections[0].Indexes[0].Fields[0].Path).Equal("date")
		gt.V(t, cfg.Collections[0].Indexes[0].Fields[1].Path).Equal("seq")
	})
}

func TestPrintIndexDiff(t *testing.T) {
	color.NoColor = true

	t.Run("no changes", func(t *testing.T) {
		var buf bytes.Buffer
		cli.PrintIndexDiff(&buf, &fireconf.DiffResult{})
		gt.S(t, buf.String()).Contains("No changes required")
	})

	t.Run("indexes to add and delete", func(t *testing.T) {
		var buf bytes.Buffer
		cli.PrintIndexDiff(&buf, &fireconf.DiffResult{
			Collections: []fireconf.CollectionDiff{
				{
					Name:   "incidents",
					Action: fireconf.ActionModify,
					IndexesToAdd: []fireconf.Index{
						{Fields: []fireconf.IndexField{
							{Path: "date", Order: fireconf.OrderAscending},
							{Path: "seq", Order: fireconf.OrderAscending},
						}},
					},
					IndexesToDelete: []fireconf.Index{
						{Fields: []fireconf.IndexField{{Path: "region", Order: fireconf.OrderDescending}}},
					},
				},
			},
		})
		gt.S(t, buf.String()).Contains("MODIFY incidents")
		gt.S(t, buf.String()).Contains("+ date ASCENDING, seq ASCENDING")
		gt.S(t, buf.String()).Contains("- region DESCENDING")
	})
}
