package config

// StorageConfig defines where persisted state lives
type StorageConfig struct {
	HistoryFile   string `json:"history_file,omitempty" yaml:"history_file,omitempty" toml:"history_file,omitempty" validate:"required"`
	LockFile      string `json:"lock_file,omitempty" yaml:"lock_file,omitempty" toml:"lock_file,omitempty" validate:"required"`
	RunLedgerPath string `json:"run_ledger_path" yaml:"run_ledger_path" toml:"run_ledger_path"` // empty disables the run ledger
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		HistoryFile:   DefaultStorageHistoryFile,
		LockFile:      DefaultStorageLockFile,
		RunLedgerPath: DefaultStorageRunLedgerPath,
	}
}
