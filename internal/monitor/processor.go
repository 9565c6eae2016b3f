package monitor

import (
	"context"
	"errors"

	"github.com/f1o/renovate/internal/datastore"
	"github.com/f1o/renovate/internal/metrics"
	"github.com/f1o/renovate/internal/models"
	"github.com/rs/zerolog"
)

// Outcome is what processing one title did.
type Outcome string

const (
	OutcomeSkipped      Outcome = "skipped"       // fetch failed or the answer was unusable
	OutcomeBaselined    Outcome = "baselined"     // first sighting, version recorded without notifying
	OutcomeUnchanged    Outcome = "unchanged"     // remote version equals history
	OutcomeUpdated      Outcome = "updated"       // notified and committed
	OutcomeNotifyFailed Outcome = "notify_failed" // change seen, history left untouched
)

// TitleSource resolves a title id into its current remote state.
type TitleSource interface {
	Category() models.Category
	FetchTitle(ctx context.Context, titleID string) (*models.FetchResult, error)
	Presentation() models.PlatformPresentation
}

// Notifier delivers a change. A nil error means delivered.
type Notifier interface {
	Notify(ctx context.Context, event models.ChangeEvent, presentation models.PlatformPresentation) error
}

// TitleProcessor compares one title against history and decides whether to
// notify and commit.
type TitleProcessor struct {
	source   TitleSource
	notifier Notifier
	metrics  *metrics.PipelineMetrics
	logger   zerolog.Logger
}

// NewTitleProcessor creates a new TitleProcessor. m may be nil.
func NewTitleProcessor(source TitleSource, notifier Notifier, m *metrics.PipelineMetrics, logger zerolog.Logger) *TitleProcessor {
	return &TitleProcessor{
		source:   source,
		notifier: notifier,
		metrics:  m,
		logger:   logger.With().Str("component", "TitleProcessor").Str("category", source.Category().String()).Logger(),
	}
}

// Process handles a single title. It only mutates record when the title is
// new or its update was delivered. Titles of another category are skipped.
func (p *TitleProcessor) Process(ctx context.Context, title models.TrackedTitle, record datastore.HistoryRecord) Outcome {
	if title.Category != p.source.Category() {
		p.logger.Warn().Str("title_id", title.ID).Str("title_category", title.Category.String()).Msg("No source for title category, skipping")
		return OutcomeSkipped
	}
	outcome := p.process(ctx, title.ID, record)
	p.metrics.ObserveTitle(p.source.Category().String(), string(outcome))
	return outcome
}

func (p *TitleProcessor) process(ctx context.Context, titleID string, record datastore.HistoryRecord) Outcome {
	category := p.source.Category()
	past, seen := record.Version(category, titleID)

	result, err := p.source.FetchTitle(ctx, titleID)
	if err != nil {
		event := p.logger.Debug().Err(err).Str("title_id", titleID)
		if errors.Is(err, context.Canceled) {
			event.Msg("Title lookup cancelled")
		} else {
			event.Msg("Title lookup failed, skipping")
		}
		return OutcomeSkipped
	}

	log := p.logger.With().Str("title_id", titleID).Str("name", result.Name).Logger()

	if !seen {
		record.SetVersion(category, titleID, result.CurrentVersion)
		log.Warn().
			Str("version", result.CurrentVersion).
			Msgf("Title %s previously untracked, saved version %s to title history", result.Name, result.CurrentVersion)
		return OutcomeBaselined
	}

	if past == result.CurrentVersion {
		log.Info().Str("version", past).Msgf("Title %s not updated (%s)", result.Name, past)
		return OutcomeUnchanged
	}

	log.Info().
		Str("past_version", past).
		Str("current_version", result.CurrentVersion).
		Msgf("Title %s updated, %s -> %s", result.Name, past, result.CurrentVersion)

	event := models.NewChangeEvent(category, result, past)
	err = p.notifier.Notify(ctx, event, p.source.Presentation())
	p.metrics.ObserveNotification(category.String(), err)
	if err != nil {
		log.Error().Err(err).Msg("Notification failed, history left unchanged for retry next run")
		return OutcomeNotifyFailed
	}

	record.SetVersion(category, titleID, result.CurrentVersion)
	return OutcomeUpdated
}
