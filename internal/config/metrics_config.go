package config

// MetricsConfig defines the Prometheus endpoint exposed in watch mode
type MetricsConfig struct {
	ListenAddress string `json:"listen_address,omitempty" yaml:"listen_address,omitempty" toml:"listen_address,omitempty" validate:"omitempty,hostname_port"`
	Path          string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty" validate:"omitempty,startswith=/"`
}

// NewDefaultMetricsConfig creates default metrics configuration (endpoint disabled)
func NewDefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		ListenAddress: "",
		Path:          "/metrics",
	}
}

// Enabled reports whether the metrics endpoint should be served
func (c MetricsConfig) Enabled() bool {
	return c.ListenAddress != ""
}
