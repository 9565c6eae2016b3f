package config

import "time"

// SchedulerConfig defines the polling cadence used by watch mode
type SchedulerConfig struct {
	IntervalSeconds int  `json:"interval_seconds,omitempty" yaml:"interval_seconds,omitempty" toml:"interval_seconds,omitempty" validate:"min=1"`
	RunOnStart      bool `json:"run_on_start" yaml:"run_on_start" toml:"run_on_start"`
}

// NewDefaultSchedulerConfig creates default scheduler configuration
func NewDefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		IntervalSeconds: DefaultSchedulerIntervalSeconds,
		RunOnStart:      true,
	}
}

// Interval returns the polling interval
func (c SchedulerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}
