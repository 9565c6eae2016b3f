package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/f1o/renovate/internal/common/errorwrapper"
	"github.com/f1o/renovate/internal/config"
	"github.com/f1o/renovate/internal/models"
)

const (
	pastVersionFieldName    = "Letzte Version"
	currentVersionFieldName = "Neue Version"
)

// ParseColor converts a hex color such as "00439C" into the integer Discord expects.
func ParseColor(hex string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || v < 0 || v > 0xFFFFFF {
		return 0, errorwrapper.NewValidationError("platform_color", hex, "must be six hexadecimal digits")
	}
	return int(v), nil
}

// footerText is "(region) titleId", or the bare id when no region is known.
func footerText(event models.ChangeEvent) string {
	if event.Region == "" {
		return event.TitleID
	}
	return fmt.Sprintf("(%s) %s", event.Region, event.TitleID)
}

func eventLink(event models.ChangeEvent, presentation models.PlatformPresentation) string {
	if event.Link != "" {
		return event.Link
	}
	if presentation.LinkTemplate != "" {
		return fmt.Sprintf(presentation.LinkTemplate, event.TitleID)
	}
	return ""
}

// BuildUpdatePayload renders a version change as a single-embed webhook message.
func BuildUpdatePayload(event models.ChangeEvent, presentation models.PlatformPresentation, settings config.NotificationConfig, now time.Time) (DiscordMessagePayload, error) {
	color, err := ParseColor(presentation.Color)
	if err != nil {
		return DiscordMessagePayload{}, err
	}

	builder := NewDiscordEmbedBuilder().
		WithTitle(event.Name).
		WithDescription(settings.UpdateMessage).
		WithURL(eventLink(event, presentation)).
		WithTimestamp(now).
		WithColor(color).
		WithFooter(footerText(event), presentation.LogoURL).
		WithThumbnail(event.IconURL).
		AddField(pastVersionFieldName, quoted(event.PastVersion), true).
		AddField(currentVersionFieldName, quoted(event.CurrentVersion), true)

	if settings.AuthorName != "" {
		builder.WithAuthor(settings.AuthorName, "", "")
	}

	embed, err := builder.Build()
	if err != nil {
		return DiscordMessagePayload{}, err
	}

	return NewDiscordMessagePayloadBuilder().
		WithUsername(settings.Username).
		AddEmbed(embed).
		Build(), nil
}
