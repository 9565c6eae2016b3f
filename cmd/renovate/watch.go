package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/f1o/renovate/internal/metrics"
	"github.com/f1o/renovate/internal/monitor"
	"github.com/spf13/cobra"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check titles on a fixed interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.configLogger()

			if interval <= 0 {
				interval = cfg.SchedulerConfig.Interval()
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := metrics.NewRegistry()
			m := metrics.New(reg)

			if cfg.MetricsConfig.Enabled() {
				srv := metrics.NewServer(cfg.MetricsConfig.ListenAddress, cfg.MetricsConfig.Path, reg, log)
				addr, err := srv.Start()
				if err != nil {
					return fmt.Errorf("failed to start metrics server: %w", err)
				}
				log.Info().Str("address", addr).Str("path", cfg.MetricsConfig.Path).Msg("Metrics endpoint listening")
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			svc, closeFn, err := monitor.NewServiceFromConfig(cfg, m, log)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); cerr != nil {
					log.Warn().Err(cerr).Msg("Failed to close run ledger")
				}
			}()

			scheduler := monitor.NewScheduler(svc, interval, cfg.SchedulerConfig.RunOnStart, log)
			if err := scheduler.Start(runCtx); err != nil {
				return err
			}
			defer scheduler.Stop()

			select {
			case <-runCtx.Done():
				log.Info().Msg("Shutdown signal received")
				return nil
			case err := <-scheduler.Errors():
				log.Error().Err(err).Msg("Run failed, stopping watch")
				return fmt.Errorf("watch stopped: %w", err)
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (defaults to scheduler_config.interval_seconds)")
	return cmd
}
