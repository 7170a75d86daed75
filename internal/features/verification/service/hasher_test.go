package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "letscheck-client/internal/common/errors"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestHashFile(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{
			name:     "empty file",
			data:     []byte{},
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "single byte",
			data:     []byte("a"),
			expected: "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "doc.pdf", tt.data)

			hash, err := HashFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hash.String())
		})
	}
}

func TestHashFileUnreadable(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeHashFailed))
}

func TestCheckFile(t *testing.T) {
	t.Run("accepted extensions", func(t *testing.T) {
		for _, name := range []string{"doc.pdf", "doc.jpg", "doc.jpeg", "doc.png", "doc.docx", "doc.PDF"} {
			path := writeTempFile(t, name, []byte("content"))
			assert.NoError(t, CheckFile(path), name)
		}
	})

	t.Run("rejected extension", func(t *testing.T) {
		path := writeTempFile(t, "doc.txt", []byte("content"))
		err := CheckFile(path)
		require.Error(t, err)
		assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeFileRejected))
	})

	t.Run("size boundary", func(t *testing.T) {
		path := writeTempFile(t, "doc.pdf", nil)
		require.NoError(t, os.Truncate(path, MaxUploadBytes))
		assert.NoError(t, CheckFile(path))

		require.NoError(t, os.Truncate(path, MaxUploadBytes+1))
		err := CheckFile(path)
		require.Error(t, err)
		assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeFileRejected))
	})

	t.Run("missing file", func(t *testing.T) {
		err := CheckFile(filepath.Join(t.TempDir(), "missing.pdf"))
		require.Error(t, err)
		assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeHashFailed))
	})
}
