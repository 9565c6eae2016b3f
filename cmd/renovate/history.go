package main

import (
	"fmt"

	"github.com/f1o/renovate/internal/datastore"
	"github.com/f1o/renovate/internal/models"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "history",
		Short:       "Show the last recorded version of every title",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{readOnlyAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store := datastore.NewHistoryStore(cfg.StorageConfig.HistoryFile, true, ctx.configLogger())
			record, err := store.Peek()
			if err != nil {
				return err
			}

			rows := historyRows(record)
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No titles recorded yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Category", "Title", "Version"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func historyRows(record datastore.HistoryRecord) [][]string {
	var rows [][]string
	for _, category := range record.Categories() {
		for _, id := range record.Titles(models.Category(category)) {
			version, _ := record.Version(models.Category(category), id)
			rows = append(rows, []string{category, id, version})
		}
	}
	return rows
}
