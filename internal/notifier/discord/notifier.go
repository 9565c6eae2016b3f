package discord

import (
	"context"
	"time"

	"github.com/f1o/renovate/internal/common/errorwrapper"
	"github.com/f1o/renovate/internal/config"
	"github.com/f1o/renovate/internal/models"
	"github.com/rs/zerolog"
)

// Poster sends a JSON document in a single attempt.
type Poster interface {
	PostJSON(ctx context.Context, url string, payload any) error
}

// DiscordNotifier handles sending update notifications to Discord
type DiscordNotifier struct {
	logger   zerolog.Logger
	poster   Poster
	settings config.NotificationConfig
	now      func() time.Time
}

// NewDiscordNotifier creates a new DiscordNotifier instance
func NewDiscordNotifier(cfg config.NotificationConfig, poster Poster, logger zerolog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		logger:   logger.With().Str("component", "DiscordNotifier").Logger(),
		poster:   poster,
		settings: cfg,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for embed timestamps.
func (dn *DiscordNotifier) WithClock(now func() time.Time) *DiscordNotifier {
	dn.now = now
	return dn
}

// Notify delivers one update message. A nil error means the webhook accepted
// it; nothing is retried here.
func (dn *DiscordNotifier) Notify(ctx context.Context, event models.ChangeEvent, presentation models.PlatformPresentation) error {
	if dn.settings.DiscordWebhookURL == "" {
		return errorwrapper.NewConfigurationError("notification_config", "discord_webhook_url", "webhook URL is not configured")
	}

	payload, err := BuildUpdatePayload(event, presentation, dn.settings, dn.now())
	if err != nil {
		dn.logger.Error().Err(err).Str("title_id", event.TitleID).Msg("Failed to build Discord payload")
		return errorwrapper.WrapError(err, "failed to build Discord payload")
	}

	if err := dn.poster.PostJSON(ctx, dn.settings.DiscordWebhookURL, payload); err != nil {
		dn.logger.Warn().Err(err).Str("title_id", event.TitleID).Msg("Failed to send Discord notification")
		return errorwrapper.WrapError(err, "failed to send Discord notification")
	}

	dn.logger.Debug().Str("title_id", event.TitleID).Msg("Discord notification sent successfully")
	return nil
}
