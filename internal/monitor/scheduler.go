package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Runner performs one pipeline pass.
type Runner interface {
	Run(ctx context.Context) (*RunSummary, error)
}

// Scheduler invokes a Runner on a fixed interval, never overlapping runs.
type Scheduler struct {
	runner     Runner
	interval   time.Duration
	runOnStart bool
	logger     zerolog.Logger

	cron    *cron.Cron
	job     cron.Job
	errs    chan error
	initial sync.WaitGroup

	mu     sync.Mutex
	active bool
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler. An interval below one second is raised to one second.
func NewScheduler(runner Runner, interval time.Duration, runOnStart bool, logger zerolog.Logger) *Scheduler {
	if interval < time.Second {
		interval = time.Second
	}
	schedLogger := logger.With().Str("component", "MonitorScheduler").Logger()

	return &Scheduler{
		runner:     runner,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     schedLogger,
		cron:       cron.New(cron.WithLogger(cronLogger{logger: schedLogger})),
		errs:       make(chan error, 1),
	}
}

// Errors delivers fatal run errors. The scheduler keeps ticking; the caller
// decides whether to stop.
func (s *Scheduler) Errors() <-chan error {
	return s.errs
}

// Start schedules the runner. With runOnStart the first run begins immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return errors.New("scheduler already started")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.job = cron.NewChain(cron.SkipIfStillRunning(cronLogger{logger: s.logger})).Then(cron.FuncJob(s.runOnce))
	s.cron.Schedule(cron.Every(s.interval), s.job)
	s.cron.Start()
	s.active = true

	s.logger.Info().Dur("interval", s.interval).Bool("run_on_start", s.runOnStart).Msg("Scheduler started")

	if s.runOnStart {
		s.initial.Add(1)
		go func() {
			defer s.initial.Done()
			s.job.Run()
		}()
	}
	return nil
}

// Stop cancels the in-flight run and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	cancel := s.cancel
	s.mu.Unlock()

	s.logger.Info().Msg("Stopping scheduler")
	cancel()
	<-s.cron.Stop().Done()
	s.initial.Wait()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) runOnce() {
	if s.ctx.Err() != nil {
		return
	}

	summary, err := s.runner.Run(s.ctx)
	switch {
	case errors.Is(err, ErrRunInProgress):
		s.logger.Warn().Msg("Previous run still holds the history lock, skipping this tick")
	case err != nil:
		select {
		case s.errs <- err:
		default:
			s.logger.Error().Err(err).Msg("Dropping run error, previous one not yet consumed")
		}
	case summary != nil:
		s.logger.Debug().Str("run_id", summary.RunID).Dur("duration", summary.Duration()).Msg("Scheduled run finished")
	}
}
