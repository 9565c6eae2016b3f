package discord

// DiscordMessagePayload represents the JSON payload sent to a Discord webhook.
type DiscordMessagePayload struct {
	Username string         `json:"username,omitempty"` // Override the default webhook username
	Embeds   []DiscordEmbed `json:"embeds,omitempty"`
}
