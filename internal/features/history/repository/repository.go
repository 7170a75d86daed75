package repository

import "letscheck-client/internal/features/history/models"

// MaxEntries caps the local history ring; the newest entry sits at index 0.
const MaxEntries = 10

// HistoryRepository persists the device-local verification history.
type HistoryRepository interface {
	// Load returns the stored entries newest-first. Absent or malformed
	// storage reads as empty; Load never fails into the render path.
	Load() ([]models.Entry, error)
	// Append prepends entry and truncates to MaxEntries.
	Append(entry models.Entry) error
	// Clear removes the persisted history.
	Clear() error
}
