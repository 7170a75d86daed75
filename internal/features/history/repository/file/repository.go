package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	commonerrors "letscheck-client/internal/common/errors"
	"letscheck-client/internal/common/logger"
	"letscheck-client/internal/features/history/models"
	"letscheck-client/internal/features/history/repository"
)

// FileName matches the web client's localStorage key.
const FileName = "verificationHistory.json"

// DefaultPath resolves the per-user history location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", commonerrors.Wrap(err, commonerrors.ErrCodeHistory, "no user config dir")
	}
	return filepath.Join(dir, "letscheck", FileName), nil
}

type fileRepository struct {
	mu   sync.Mutex
	path string
}

// NewRepository returns a history store backed by a JSON file at path.
func NewRepository(path string) repository.HistoryRepository {
	return &fileRepository{path: path}
}

func (r *fileRepository) Load() ([]models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(), nil
}

// load is best-effort: absent or malformed storage reads as empty so a
// corrupt file can never break the verification flow.
func (r *fileRepository) load() []models.Entry {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", r.path).Msg("history unreadable, treating as empty")
		}
		return []models.Entry{}
	}

	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn().Err(err).Str("path", r.path).Msg("history malformed, treating as empty")
		return []models.Entry{}
	}
	return entries
}

func (r *fileRepository) Append(entry models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append([]models.Entry{entry}, r.load()...)
	if len(entries) > repository.MaxEntries {
		entries = entries[:repository.MaxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return commonerrors.Wrap(err, commonerrors.ErrCodeHistory, "encode history")
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return commonerrors.Wrap(err, commonerrors.ErrCodeHistory, "create history dir")
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return commonerrors.Wrap(err, commonerrors.ErrCodeHistory, "write history")
	}
	return nil
}

func (r *fileRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return commonerrors.Wrap(err, commonerrors.ErrCodeHistory, "clear history")
	}
	return nil
}
