package service

import (
	"context"
	"strings"
	"sync"
	"time"

	commonerrors "letscheck-client/internal/common/errors"
	"letscheck-client/internal/common/logger"
	"letscheck-client/internal/common/validation"
	historymodels "letscheck-client/internal/features/history/models"
	historyrepo "letscheck-client/internal/features/history/repository"
	"letscheck-client/internal/features/verification/models"
)

// Status is the controller's lifecycle state for one user interaction.
type Status int

const (
	StatusIdle Status = iota
	StatusBusy
	StatusShowingResult
)

// Controller orchestrates input surfaces, hashing, the verification call,
// the history append and the verdict projection.
//
// Transitions: IDLE → BUSY on submission, BUSY → SHOWING_RESULT on success,
// BUSY → IDLE on failure. Entering BUSY clears the previous result so a
// stale verdict can never overlap a new request. At most one verification
// is in flight; submissions are not cancellable, latest-request-wins is
// enforced by gating rather than aborting.
type Controller struct {
	verifier Verifier
	history  historyrepo.HistoryRepository

	mu     sync.Mutex
	status Status
	result *models.VerificationResult
}

func NewController(verifier Verifier, history historyrepo.HistoryRepository) *Controller {
	return &Controller{
		verifier: verifier,
		history:  history,
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Result returns the currently displayed verdict, nil while idle or busy.
func (c *Controller) Result() *models.VerificationResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// VerifyFile runs the upload surface: acceptance gate, hash, then submit
// with method UPLOAD. A rejected file never invokes the hasher.
func (c *Controller) VerifyFile(ctx context.Context, path string) (*models.VerificationResult, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}

	hash, err := HashFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("hash", hash.String()).Str("path", path).Msg("file hashed")

	return c.submit(ctx, hash, models.MethodUpload)
}

// VerifyManualInput runs the manual-entry surface: the trimmed value is
// submitted verbatim, the backend stays authoritative on format.
func (c *Controller) VerifyManualInput(ctx context.Context, raw string) (*models.VerificationResult, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, commonerrors.NewValidationError("hash", "must not be empty")
	}
	if !validation.IsDocumentHash(trimmed) {
		logger.Warn().Str("hash", trimmed).Msg("input does not look like a SHA-256 hash, submitting anyway")
	}

	return c.submit(ctx, models.DocumentHash(trimmed), models.MethodHashInput)
}

// VerifyScannedCode runs the QR surface: the decoded string is forwarded
// directly as the hash.
func (c *Controller) VerifyScannedCode(ctx context.Context, decoded string) (*models.VerificationResult, error) {
	return c.submit(ctx, models.DocumentHash(decoded), models.MethodQRScan)
}

func (c *Controller) submit(ctx context.Context, hash models.DocumentHash, method models.VerificationMethod) (*models.VerificationResult, error) {
	c.mu.Lock()
	if c.status == StatusBusy {
		c.mu.Unlock()
		return nil, commonerrors.New(commonerrors.ErrCodeBusy, "a verification is already in flight")
	}
	// Clear before issuing the request; the verdict area shows a single
	// result at any time.
	c.result = nil
	c.status = StatusBusy
	c.mu.Unlock()

	result, err := c.verifier.VerifyHash(ctx, hash, method)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusIdle
		// History stays untouched on failure.
		return nil, err
	}

	// Store the result first, then append: the rendered state must never
	// run ahead of the persisted history.
	c.result = result
	c.status = StatusShowingResult

	entry := historymodels.Entry{
		Hash:   string(hash),
		Result: string(result.Result),
		Date:   time.Now().UTC(),
	}
	if err := c.history.Append(entry); err != nil {
		logger.Warn().Err(err).Msg("history append failed")
	}

	return result, nil
}
