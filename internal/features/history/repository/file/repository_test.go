package file

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letscheck-client/internal/features/history/models"
	"letscheck-client/internal/features/history/repository"
)

func tempRepoPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "letscheck", FileName)
}

func entry(i int) models.Entry {
	return models.Entry{
		Hash:   fmt.Sprintf("%064d", i),
		Result: "AUTHENTIC",
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
	}
}

func TestLoadAbsentFile(t *testing.T) {
	repo := NewRepository(tempRepoPath(t))

	entries, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo := NewRepository(path)
	entries, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendNewestFirst(t *testing.T) {
	repo := NewRepository(tempRepoPath(t))

	require.NoError(t, repo.Append(entry(1)))
	require.NoError(t, repo.Append(entry(2)))
	require.NoError(t, repo.Append(entry(3)))

	entries, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entry(3).Hash, entries[0].Hash)
	assert.Equal(t, entry(2).Hash, entries[1].Hash)
	assert.Equal(t, entry(1).Hash, entries[2].Hash)
}

func TestAppendCapsEntries(t *testing.T) {
	repo := NewRepository(tempRepoPath(t))

	for i := 1; i <= repository.MaxEntries+2; i++ {
		require.NoError(t, repo.Append(entry(i)))
	}

	entries, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, entries, repository.MaxEntries)
	assert.Equal(t, entry(repository.MaxEntries+2).Hash, entries[0].Hash)
	assert.Equal(t, entry(3).Hash, entries[len(entries)-1].Hash)
}

func TestAppendRecoversFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	repo := NewRepository(path)
	require.NoError(t, repo.Append(entry(1)))

	entries, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry(1).Hash, entries[0].Hash)
}

func TestAppendPreservesDates(t *testing.T) {
	repo := NewRepository(tempRepoPath(t))

	e := entry(7)
	require.NoError(t, repo.Append(e))

	entries, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, e.Date.Equal(entries[0].Date))
}

func TestClear(t *testing.T) {
	path := tempRepoPath(t)
	repo := NewRepository(path)

	require.NoError(t, repo.Append(entry(1)))
	require.NoError(t, repo.Clear())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	entries, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearAbsentFile(t *testing.T) {
	repo := NewRepository(tempRepoPath(t))
	assert.NoError(t, repo.Clear())
}
