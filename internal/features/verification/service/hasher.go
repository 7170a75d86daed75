package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	commonerrors "letscheck-client/internal/common/errors"
	"letscheck-client/internal/common/validation"
	"letscheck-client/internal/features/verification/models"
)

// MaxUploadBytes is the hard size cap of the upload surface.
const MaxUploadBytes = 10 << 20 // 10 MiB

// CheckFile is the acceptance gate of the upload surface. It must run
// before any hashing: a rejected file never reaches the digest, the
// backend, or the history.
func CheckFile(path string) error {
	if !validation.IsAcceptedDocumentExt(path) {
		return commonerrors.NewFileRejected(path, "format non accepté (PDF, JPG, PNG, DOCX)")
	}

	info, err := os.Stat(path)
	if err != nil {
		return commonerrors.NewHashFailed(path, err)
	}
	if info.IsDir() {
		return commonerrors.NewFileRejected(path, "le chemin est un répertoire")
	}
	if info.Size() > MaxUploadBytes {
		return commonerrors.NewFileRejected(path, "fichier trop volumineux (max 10 Mo)").
			WithDetail("size", info.Size())
	}
	return nil
}

// HashFile streams the file through SHA-256 and returns the lowercase hex
// digest. The platform digest implementation is used as-is.
func HashFile(path string) (models.DocumentHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", commonerrors.NewHashFailed(path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", commonerrors.NewHashFailed(path, fmt.Errorf("read file: %w", err))
	}
	return models.DocumentHash(hex.EncodeToString(h.Sum(nil))), nil
}
