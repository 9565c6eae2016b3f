package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/f1o/renovate/internal/datastore"
	"github.com/spf13/cobra"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:         "runs",
		Short:       "List recent pipeline runs from the run ledger",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{readOnlyAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.StorageConfig.RunLedgerPath == "" {
				return fmt.Errorf("run ledger is disabled (storage_config.run_ledger_path is empty)")
			}

			ledger, err := datastore.NewRunLedger(cfg.StorageConfig.RunLedgerPath, ctx.configLogger())
			if err != nil {
				return err
			}
			defer ledger.Close()

			entries, err := ledger.RecentRuns(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Started", "Duration", "Status", "Checked", "Updated", "New", "Failed"},
				runRows(entries),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}

func runRows(entries []datastore.RunLedgerEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		duration := "-"
		if e.FinishedAt.Valid {
			duration = e.FinishedAt.Time.Sub(e.StartedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			shortID(e.RunID),
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			e.Status,
			strconv.Itoa(e.TitlesChecked),
			strconv.Itoa(e.TitlesUpdated),
			strconv.Itoa(e.TitlesBaselined),
			strconv.Itoa(e.FetchFailures + e.NotifyFailures),
		})
	}
	return rows
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
