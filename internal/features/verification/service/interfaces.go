package service

import (
	"context"

	"letscheck-client/internal/features/verification/models"
)

// Verifier is the backend-facing verification operation. Implemented by
// platform/api.Client; faked in tests.
type Verifier interface {
	VerifyHash(ctx context.Context, hash models.DocumentHash, method models.VerificationMethod) (*models.VerificationResult, error)
}
