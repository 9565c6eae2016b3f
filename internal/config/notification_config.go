package config

// NotificationConfig defines where and how update notifications are delivered
type NotificationConfig struct {
	DiscordWebhookURL string `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" toml:"discord_webhook_url,omitempty" validate:"required,url"`
	Username          string `json:"username,omitempty" yaml:"username,omitempty" toml:"username,omitempty" validate:"required,max=80"`
	AuthorName        string `json:"author_name,omitempty" yaml:"author_name,omitempty" toml:"author_name,omitempty" validate:"max=256"`
	UpdateMessage     string `json:"update_message,omitempty" yaml:"update_message,omitempty" toml:"update_message,omitempty" validate:"max=4096"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DiscordWebhookURL: "",
		Username:          DefaultNotificationUsername,
		AuthorName:        DefaultNotificationAuthorName,
		UpdateMessage:     DefaultNotificationUpdateMessage,
	}
}
