package main

import (
	"errors"
	"fmt"

	"github.com/f1o/renovate/internal/monitor"
	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check every configured title once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.configLogger()

			svc, closeFn, err := monitor.NewServiceFromConfig(cfg, nil, log)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); cerr != nil {
					log.Warn().Err(cerr).Msg("Failed to close run ledger")
				}
			}()

			summary, err := svc.Run(cmd.Context())
			if errors.Is(err, monitor.ErrRunInProgress) {
				log.Warn().Msg("Another run holds the history lock, nothing to do")
				return nil
			}
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked %d, updated %d, new %d, failed %d\n",
				summary.Checked, summary.Updated, summary.Baselined, summary.FetchFailures+summary.NotifyFailed)
			return nil
		},
	}
}
