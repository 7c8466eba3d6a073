package cmd

import (
	"context"
	"fmt"
	"time"

	"sync-documenter/core/config"
	"sync-documenter/core/history"
	"sync-documenter/core/logger"
	"sync-documenter/core/snapshot"
	"sync-documenter/core/storage"
	"sync-documenter/feature/docgen"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	pilotRef      string
	productionRef string
	fromStorage   bool
	outputDir     string
	publishObject string
	changesOnly   bool
)

// reportCmd generates the comparison report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the pilot/production comparison report",
	Long: `Compare two exported configuration snapshots and write the HTML report.

Snapshots are JSON exports read from local files, or from object storage
with --from-storage (refs are then object names in the configured bucket).

Examples:
  # Compare two local exports
  sync-documenter report --pilot pilot.json --production production.json

  # Compare exports held in object storage and publish the report
  sync-documenter report --pilot exports/pilot.json --production exports/prod.json \
    --from-storage --publish reports/latest.html

  # Only show rows that differ
  sync-documenter report --pilot pilot.json --production production.json --changes-only`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&pilotRef, "pilot", "", "Pilot snapshot export (file path, or object name with --from-storage)")
	reportCmd.Flags().StringVar(&productionRef, "production", "", "Production snapshot export (file path, or object name with --from-storage)")
	reportCmd.Flags().BoolVar(&fromStorage, "from-storage", false, "Read snapshot exports from object storage")
	reportCmd.Flags().StringVar(&outputDir, "output", "", "Output directory (defaults to report.output_dir)")
	reportCmd.Flags().StringVar(&publishObject, "publish", "", "Also publish the report to object storage under this object name")
	reportCmd.Flags().BoolVar(&changesOnly, "changes-only", false, "Suppress unchanged rows in the rendered tables")
	_ = reportCmd.MarkFlagRequired("pilot")
	_ = reportCmd.MarkFlagRequired("production")

	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	started := time.Now()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	l.Info("Starting report generation",
		zap.String("pilot", pilotRef),
		zap.String("production", productionRef),
	)

	// Storage is needed to read exports from a bucket or to publish.
	var client storage.Client
	if fromStorage || publishObject != "" {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	pilot, production, err := loadSnapshots(ctx, client, cfg.Storage.Bucket)
	if err != nil {
		return err
	}

	gen := docgen.NewGenerator(l, docgen.Options{
		Title:       cfg.Report.Title,
		ChangesOnly: changesOnly || cfg.Report.ChangesOnly,
	})
	doc, err := gen.Generate(pilot, production)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	for _, diagnostic := range doc.Diagnostics {
		l.Warn("extraction diagnostic", zap.String("detail", diagnostic))
	}

	dir := outputDir
	if dir == "" {
		dir = cfg.Report.OutputDir
	}
	path, err := doc.WriteFile(dir)
	if err != nil {
		return err
	}
	l.Info("Report written", zap.String("path", path))

	if publishObject != "" {
		if err := doc.Publish(ctx, client, cfg.Storage.Bucket, publishObject); err != nil {
			return err
		}
		l.Info("Report published", zap.String("object", publishObject))
	}

	recordRun(ctx, l, cfg, doc, started, path)
	return nil
}

func loadSnapshots(ctx context.Context, client storage.Client, bucket string) (pilot, production *snapshot.Tree, err error) {
	if fromStorage {
		pilot, err = snapshot.LoadObject(ctx, client, bucket, pilotRef)
		if err != nil {
			return nil, nil, err
		}
		production, err = snapshot.LoadObject(ctx, client, bucket, productionRef)
		if err != nil {
			return nil, nil, err
		}
		return pilot, production, nil
	}

	pilot, err = snapshot.Load(pilotRef)
	if err != nil {
		return nil, nil, err
	}
	production, err = snapshot.Load(productionRef)
	if err != nil {
		return nil, nil, err
	}
	return pilot, production, nil
}

// recordRun stores the run in history when a database is configured.
// History is optional: failures are logged, not fatal.
func recordRun(ctx context.Context, l *zap.Logger, cfg *config.Config, doc *docgen.Document, started time.Time, path string) {
	if !cfg.Database.Enabled() {
		return
	}

	db, err := history.Connect(cfg.Database)
	if err != nil {
		l.Warn("Optional history database connection failed", zap.Error(err))
		return
	}
	store, err := history.NewStore(db)
	if err != nil {
		l.Warn("History store unavailable", zap.Error(err))
		return
	}

	status := history.StatusComplete
	if doc.Failed > 0 {
		status = history.StatusPartial
	}
	run := &history.Run{
		ID:            uuid.NewString(),
		StartedAt:     started,
		FinishedAt:    time.Now(),
		PilotRef:      pilotRef,
		ProductionRef: productionRef,
		Connectors:    doc.Connectors,
		Failed:        doc.Failed,
		OutputPath:    path,
		Status:        status,
	}
	if err := store.Record(ctx, run); err != nil {
		l.Warn("Failed to record run", zap.Error(err))
		return
	}
	l.Info("Run recorded", zap.String("run_id", run.ID))
}
