// Command enrich is the Playmaker enrichment CLI.
//
// Usage:
//
//	playmaker-enrich run --dataset nfl
//	playmaker-enrich run --dataset mlb_milb --enrichers geo,valuation --force
//	playmaker-enrich list
//	playmaker-enrich datasets
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/playmaker/playmaker-data/internal/bootstrap"
	"github.com/playmaker/playmaker-data/internal/config"
	"github.com/playmaker/playmaker-data/internal/dataset"
	"github.com/playmaker/playmaker-data/internal/task"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "playmaker-enrich",
		Short: "Playmaker dataset enrichment CLI",
	}

	root.AddCommand(runCmd())
	root.AddCommand(listCmd())
	root.AddCommand(datasetsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var (
		datasetID string
		enrichers string
		force     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run enrichment modules over a dataset and print the diff",
		RunE: func(cmd *cobra.Command, args []string) error {
			if datasetID == "" {
				return fmt.Errorf("--dataset is required")
			}
			if _, ok := config.DatasetRegistry[datasetID]; !ok {
				return fmt.Errorf("unknown dataset %q (known: %s)", datasetID, strings.Join(config.DatasetIDs(), ", "))
			}
			return withStore(func(ctx context.Context, cfg *config.Config, store dataset.Store) error {
				reg := bootstrap.NewEnrichers(cfg)

				ids := reg.IDs()
				if enrichers != "" {
					ids = strings.Split(enrichers, ",")
					for _, id := range ids {
						if _, ok := reg.Get(id); !ok {
							return fmt.Errorf("unknown enricher %q (known: %s)", id, strings.Join(reg.IDs(), ", "))
						}
					}
				}

				registry := task.NewRegistry(logger)
				runner := task.NewRunner(store, reg, registry, bootstrap.EnricherConfig(cfg), logger)

				t := registry.Create(datasetID, ids, force)

				// Interrupt requests cooperative cancellation; in-flight
				// calls drain and the diff still gets computed.
				go func() {
					<-ctx.Done()
					registry.Cancel(t.ID)
				}()

				start := time.Now()
				runner.Run(context.Background(), t.ID)

				final, _ := registry.Get(t.ID)
				logger.Info("Run finished",
					"status", final.Status,
					"teams_enriched", final.TeamsEnriched,
					"teams_total", final.TeamsTotal,
					"duration", time.Since(start).Round(time.Second))
				for _, id := range final.EnricherIDs {
					p := final.Progress[id]
					logger.Info("module result",
						"enricher", id, "status", p.Status,
						"processed", p.TeamsProcessed, "enriched", p.TeamsEnriched, "failed", p.TeamsFailed,
						"error", p.Error)
				}

				if d, ok := registry.Diff(t.ID); ok {
					logger.Info("Changes",
						"teams_changed", d.TeamsChanged,
						"fields_added", d.TotalFieldsAdded,
						"fields_modified", d.TotalFieldsModified)
					for _, td := range d.Teams {
						logger.Info("team changed", "team", td.TeamName,
							"added", td.FieldsAdded, "modified", td.FieldsModified)
					}
				} else {
					logger.Info("No changes")
				}

				if final.Status == task.StatusFailed {
					return fmt.Errorf("task failed: %s", final.Error)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&datasetID, "dataset", "", "Dataset ID to enrich")
	cmd.Flags().StringVar(&enrichers, "enrichers", "", "Comma-separated enricher IDs; empty = all")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite already-populated fields")
	return cmd
}

// --------------------------------------------------------------------------
// list command
// --------------------------------------------------------------------------

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered enrichment modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			for _, info := range bootstrap.NewEnrichers(cfg).List() {
				logger.Info("enricher",
					"id", info.ID, "name", info.Name,
					"available", info.Available,
					"fields", strings.Join(info.FieldsAdded, ","))
			}
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// datasets command
// --------------------------------------------------------------------------

func datasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List configured datasets with record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, store dataset.Store) error {
				for _, id := range config.DatasetIDs() {
					dc := config.DatasetRegistry[id]
					count, err := store.CountRecords(ctx, id)
					if err != nil {
						logger.Error("count failed", "dataset", id, "error", err)
						continue
					}
					logger.Info("dataset",
						"id", id, "name", dc.Name, "records", count)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// withStore handles config loading, store setup, and context cancellation.
func withStore(fn func(ctx context.Context, cfg *config.Config, store dataset.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, closeStore, err := bootstrap.NewStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(ctx, cfg, store)
}
