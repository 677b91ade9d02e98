package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/repository/firestore"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// defaultDatabaseID is the Firestore database used when none is given
const defaultDatabaseID = "(default)"

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var collectionPrefix string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("OPSBOARD_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("OPSBOARD_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.StringFlag{
				Name:        "firestore-collection-prefix",
				Usage:       "Prefix for Firestore collection names",
				Sources:     cli.EnvVars("OPSBOARD_FIRESTORE_COLLECTION_PREFIX"),
				Destination: &collectionPrefix,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if databaseID == "" {
				databaseID = defaultDatabaseID
			}
			logger := logging.Default().With("projectID", projectID, "databaseID", databaseID)
			indexConfig := getIndexConfig(collectionPrefix)
			collection := indexConfig.Collections[0].Name

			client, err := fireconf.New(ctx, projectID, databaseID, indexConfig, fireconf.WithLogger(logger))
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client",
					goerr.V("project_id", projectID), goerr.V("database_id", databaseID))
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			w := c.Root().Writer
			if dryRun {
				current, err := client.Import(ctx, collection)
				if err != nil {
					return goerr.Wrap(err, "failed to import current indexes", goerr.V("collection", collection))
				}
				diff, err := client.DiffConfigs(current)
				if err != nil {
					return goerr.Wrap(err, "failed to diff index configuration", goerr.V("collection", collection))
				}
				printIndexDiff(w, diff)
				return nil
			}

			logger.Info("Applying incident indexes", "collection", collection)
			if err := client.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations", goerr.V("collection", collection))
			}
			_, _ = okColor.Fprintf(w, "Indexes of %s are up to date\n", collection)
			return nil
		},
	}
}

// printIndexDiff prints the changes a migration would apply
func printIndexDiff(w io.Writer, diff *fireconf.DiffResult) {
	if len(diff.Collections) == 0 {
		_, _ = okColor.Fprintln(w, "No changes required")
		return
	}

	for _, col := range diff.Collections {
		_, _ = headingColor.Fprintf(w, "%s %s\n", col.Action, col.Name)
		for _, idx := range col.IndexesToAdd {
			_, _ = labelColor.Fprint(w, "  + ")
			_, _ = fmt.Fprintln(w, indexFields(idx))
		}
		for _, idx := range col.IndexesToDelete {
			_, _ = alertColor.Fprint(w, "  - ")
			_, _ = fmt.Fprintln(w, indexFields(idx))
		}
	}
}

func indexFields(idx fireconf.Index) string {
	fields := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		fields = append(fields, f.Path+" "+string(f.Order))
	}
	return strings.Join(fields, ", ")
}

// getIndexConfig returns the Firestore index configuration
func getIndexConfig(prefix string) *fireconf.Config {
	name := firestore.IncidentsCollection
	if prefix != "" {
		name = prefix + "_" + name
	}

	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: name,
				Indexes: []fireconf.Index{
					// ListBetween: date range, source order within a day
					{
						Fields: []fireconf.IndexField{
							{Path: "date", Order: fireconf.OrderAscending},
							{Path: "seq", Order: fireconf.OrderAscending},
						},
					},
				},
			},
		},
	}
}
