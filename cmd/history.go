package cmd

import (
	"context"
	"fmt"

	"sync-documenter/core/config"
	"sync-documenter/core/history"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists recent report runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent report generation runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Database.Enabled() {
		return fmt.Errorf("no history database configured (set DATABASE_DRIVER)")
	}

	db, err := history.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to history database: %w", err)
	}
	store, err := history.NewStore(db)
	if err != nil {
		return err
	}

	runs, err := store.Recent(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-10s  %-4s  %-4s  %s\n", "RUN", "STARTED", "STATUS", "CONN", "FAIL", "OUTPUT")
	for _, run := range runs {
		fmt.Printf("%-36s  %-20s  %-10s  %-4d  %-4d  %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Status,
			run.Connectors,
			run.Failed,
			run.OutputPath,
		)
	}
	return nil
}
