package monitor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/f1o/renovate/internal/datastore"
	"github.com/f1o/renovate/internal/metrics"
	"github.com/f1o/renovate/internal/models"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrRunInProgress is returned when another run holds the history lock.
// It is not fatal; the caller skips this run.
var ErrRunInProgress = errors.New("another run holds the history lock")

// ServiceOptions wires a Service. Ledger and Metrics are optional.
type ServiceOptions struct {
	Titles    []models.TrackedTitle
	Debug     bool
	LockFile  string
	Store     *datastore.HistoryStore
	Processor *TitleProcessor
	Ledger    *datastore.RunLedger
	Metrics   *metrics.PipelineMetrics
	Logger    zerolog.Logger
}

// Service runs the load, process, save pipeline over the tracked titles.
type Service struct {
	titles    []models.TrackedTitle
	debug     bool
	store     *datastore.HistoryStore
	processor *TitleProcessor
	ledger    *datastore.RunLedger
	metrics   *metrics.PipelineMetrics
	lock      *flock.Flock
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a Service from opts.
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("history store is required")
	}
	if opts.Processor == nil {
		return nil, errors.New("title processor is required")
	}
	if opts.LockFile == "" {
		opts.LockFile = opts.Store.Path() + ".lock"
	}

	return &Service{
		titles:    append([]models.TrackedTitle(nil), opts.Titles...),
		debug:     opts.Debug,
		store:     opts.Store,
		processor: opts.Processor,
		ledger:    opts.Ledger,
		metrics:   opts.Metrics,
		lock:      flock.New(opts.LockFile),
		logger:    opts.Logger.With().Str("component", "MonitoringService").Logger(),
		now:       time.Now,
	}, nil
}

// Run performs one pipeline pass. Only a failed history load or save is
// returned as a fatal error; per-title problems end up in the summary. When
// ctx is cancelled the remaining titles are left for the next run and
// whatever changed so far is still saved.
func (s *Service) Run(ctx context.Context) (*RunSummary, error) {
	locked, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	if !locked {
		s.metrics.ObserveRun("locked", 0, s.now(), false)
		return nil, ErrRunInProgress
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to release history lock")
		}
	}()

	summary := NewRunSummary(uuid.NewString(), s.now())
	log := s.logger.With().Str("run_id", summary.RunID).Logger()
	log.Info().Int("titles", len(s.titles)).Bool("debug", s.debug).Msg("Starting run")

	ledgerID := s.recordStart(summary, log)

	record, err := s.store.Load()
	if err != nil {
		return summary, s.finish(summary, ledgerID, err, log)
	}

	for _, title := range s.titles {
		if ctx.Err() != nil {
			summary.Interrupted = true
			log.Warn().Int("processed", summary.Checked).Msg("Run interrupted, remaining titles left for next run")
			break
		}
		summary.Record(s.processor.Process(ctx, title, record))
	}

	if summary.HasChanges() {
		if err := s.store.Save(record); err != nil {
			return summary, s.finish(summary, ledgerID, err, log)
		}
		summary.Saved = !s.debug
	}

	return summary, s.finish(summary, ledgerID, nil, log)
}

func (s *Service) recordStart(summary *RunSummary, log zerolog.Logger) int64 {
	if s.ledger == nil || s.debug {
		return 0
	}
	id, err := s.ledger.RecordRunStart(summary.RunID, summary.StartedAt)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to record run start")
		return 0
	}
	return id
}

// finish closes the summary, records it and passes runErr through.
func (s *Service) finish(summary *RunSummary, ledgerID int64, runErr error, log zerolog.Logger) error {
	summary.FinishedAt = s.now()
	status := summary.Status(runErr)

	if ledgerID != 0 {
		if err := s.ledger.RecordRunCompletion(ledgerID, summary.LedgerEntry(runErr)); err != nil {
			log.Warn().Err(err).Msg("Failed to record run completion")
		}
	}
	s.metrics.ObserveRun(strings.ToLower(status), summary.Duration(), summary.FinishedAt, runErr == nil)

	if runErr != nil {
		log.Error().Err(runErr).Msg("Run failed")
		return runErr
	}

	log.Info().
		Int("checked", summary.Checked).
		Int("baselined", summary.Baselined).
		Int("unchanged", summary.Unchanged).
		Int("updated", summary.Updated).
		Int("fetch_failures", summary.FetchFailures).
		Int("notify_failures", summary.NotifyFailed).
		Bool("saved", summary.Saved).
		Dur("duration", summary.Duration()).
		Msg("Finished processing titles")
	return nil
}
