package monitor

import (
	"fmt"

	"github.com/f1o/renovate/internal/config"
	"github.com/f1o/renovate/internal/datastore"
	"github.com/f1o/renovate/internal/httpclient"
	"github.com/f1o/renovate/internal/metrics"
	"github.com/f1o/renovate/internal/models"
	"github.com/f1o/renovate/internal/notifier/discord"
	"github.com/f1o/renovate/internal/orbis"
	"github.com/rs/zerolog"
)

// initializeHTTPClient creates the client shared by the lookup and the webhook
func initializeHTTPClient(gCfg *config.GlobalConfig, logger zerolog.Logger) (*httpclient.HTTPClient, error) {
	client, err := httpclient.NewHTTPClientBuilder(logger).
		WithConfig(httpclient.ConfigFromApp(gCfg.HTTPClientConfig)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return client, nil
}

// initializeRunLedger opens the SQLite run ledger unless disabled
func initializeRunLedger(gCfg *config.GlobalConfig, logger zerolog.Logger) (*datastore.RunLedger, error) {
	if gCfg.StorageConfig.RunLedgerPath == "" {
		logger.Debug().Msg("Run ledger disabled")
		return nil, nil
	}
	ledger, err := datastore.NewRunLedger(gCfg.StorageConfig.RunLedgerPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run ledger: %w", err)
	}
	return ledger, nil
}

// NewServiceFromConfig wires the full pipeline from configuration. The
// returned close function releases the run ledger. m may be nil.
func NewServiceFromConfig(gCfg *config.GlobalConfig, m *metrics.PipelineMetrics, logger zerolog.Logger) (*Service, func() error, error) {
	client, err := initializeHTTPClient(gCfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ledger, err := initializeRunLedger(gCfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() error {
		if ledger == nil {
			return nil
		}
		return ledger.Close()
	}

	source := orbis.NewClient(gCfg.OrbisConfig, client, logger)
	notifier := discord.NewDiscordNotifier(gCfg.NotificationConfig, client, logger)

	svc, err := NewService(ServiceOptions{
		Titles:    models.NewTrackedTitles(models.CategoryOrbis, gCfg.Titles.Orbis),
		Debug:     gCfg.Debug,
		LockFile:  gCfg.StorageConfig.LockFile,
		Store:     datastore.NewHistoryStore(gCfg.StorageConfig.HistoryFile, gCfg.Debug, logger),
		Processor: NewTitleProcessor(source, notifier, m, logger),
		Ledger:    ledger,
		Metrics:   m,
		Logger:    logger,
	})
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}
