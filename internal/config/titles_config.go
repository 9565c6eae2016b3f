package config

// TitlesConfig lists the tracked title identifiers per platform category.
// Titles are processed in the order they appear.
type TitlesConfig struct {
	Orbis []string `json:"orbis,omitempty" yaml:"orbis,omitempty" toml:"orbis,omitempty" validate:"dive,titleid"`
}

// NewDefaultTitlesConfig creates an empty title list
func NewDefaultTitlesConfig() TitlesConfig {
	return TitlesConfig{
		Orbis: []string{},
	}
}

// Count returns the number of tracked titles across all categories
func (tc TitlesConfig) Count() int {
	return len(tc.Orbis)
}
