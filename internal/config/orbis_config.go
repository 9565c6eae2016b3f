package config

// OrbisConfig defines the PlayStation 4 lookup endpoint and how its updates are presented
type OrbisConfig struct {
	APIBaseURL      string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty" toml:"api_base_url,omitempty" validate:"required,url"`
	PlatformColor   string `json:"platform_color,omitempty" yaml:"platform_color,omitempty" toml:"platform_color,omitempty" validate:"required,platformcolor"`
	PlatformLogoURL string `json:"platform_logo_url,omitempty" yaml:"platform_logo_url,omitempty" toml:"platform_logo_url,omitempty" validate:"omitempty,url"`
}

// NewDefaultOrbisConfig creates default orbis configuration
func NewDefaultOrbisConfig() OrbisConfig {
	return OrbisConfig{
		APIBaseURL:      DefaultOrbisAPIBaseURL,
		PlatformColor:   DefaultOrbisPlatformColor,
		PlatformLogoURL: DefaultOrbisPlatformLogoURL,
	}
}
