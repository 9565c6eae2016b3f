package datastore

import (
	"encoding/json"
	"errors"
	"io/fs"

	"github.com/f1o/renovate/internal/common/filemanager"
	"github.com/rs/zerolog"
)

const historyFilePerm fs.FileMode = 0644

// HistoryStore loads and persists the HistoryRecord at a fixed path.
type HistoryStore struct {
	path        string
	debug       bool
	logger      zerolog.Logger
	fileManager *filemanager.FileManager
}

// NewHistoryStore creates a store for path. With debug set, Save never writes.
func NewHistoryStore(path string, debug bool, logger zerolog.Logger) *HistoryStore {
	return &HistoryStore{
		path:        path,
		debug:       debug,
		logger:      logger.With().Str("component", "HistoryStore").Str("path", path).Logger(),
		fileManager: filemanager.NewFileManager(logger),
	}
}

// Path returns the history file location.
func (hs *HistoryStore) Path() string {
	return hs.path
}

// Load reads the history file. A missing file is replaced on disk by an empty
// record for every known category before returning it. Any other failure
// wraps ErrHistoryLoad.
func (hs *HistoryStore) Load() (HistoryRecord, error) {
	record, err := hs.read()
	if errors.Is(err, fs.ErrNotExist) {
		return hs.bootstrap()
	}
	if err != nil {
		hs.logger.Error().Err(err).Msg("Failed to load title history")
		return nil, &historyError{kind: ErrHistoryLoad, path: hs.path, cause: err}
	}

	if record.EnsureCategories() {
		hs.logger.Debug().Msg("Filled missing history categories")
	}

	hs.logger.Info().Int("categories", len(record)).Msg("Loaded title history")
	return record, nil
}

// Peek reads the history file without creating it. A missing file yields an
// empty record.
func (hs *HistoryStore) Peek() (HistoryRecord, error) {
	record, err := hs.read()
	if errors.Is(err, fs.ErrNotExist) {
		return NewHistoryRecord(), nil
	}
	if err != nil {
		return nil, &historyError{kind: ErrHistoryLoad, path: hs.path, cause: err}
	}
	record.EnsureCategories()
	return record, nil
}

// Save writes record atomically. It is a no-op in debug mode.
func (hs *HistoryStore) Save(record HistoryRecord) error {
	if hs.debug {
		hs.logger.Warn().Msg("Debug is active, not saving title history")
		return nil
	}

	if err := hs.write(record); err != nil {
		hs.logger.Error().Err(err).Msg("Failed to save title history")
		return &historyError{kind: ErrHistorySave, path: hs.path, cause: err}
	}

	hs.logger.Info().Msg("Saved title history")
	return nil
}

func (hs *HistoryStore) read() (HistoryRecord, error) {
	data, err := hs.fileManager.ReadFile(hs.path, filemanager.DefaultMaxReadSize)
	if err != nil {
		return nil, err
	}

	var record HistoryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, WrapError(err, "history file is not valid JSON")
	}
	if record == nil {
		return nil, WrapError(errors.New("document is null"), "history file is not valid JSON")
	}
	return record, nil
}

// bootstrap writes the empty record regardless of debug mode so the next
// Load does not take the missing-file branch again.
func (hs *HistoryStore) bootstrap() (HistoryRecord, error) {
	record := NewHistoryRecord()
	if err := hs.write(record); err != nil {
		hs.logger.Error().Err(err).Msg("Failed to create title history")
		return nil, &historyError{kind: ErrHistoryLoad, path: hs.path, cause: err}
	}

	hs.logger.Warn().Msg("Title history not found, created empty file")
	return record, nil
}

func (hs *HistoryStore) write(record HistoryRecord) error {
	data, err := encodeHistory(record)
	if err != nil {
		return WrapError(err, "failed to encode title history")
	}
	return hs.fileManager.WriteFileAtomic(hs.path, data, historyFilePerm)
}
