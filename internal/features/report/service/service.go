package service

import (
	"context"
	"strings"

	commonerrors "letscheck-client/internal/common/errors"
	"letscheck-client/internal/common/logger"
	"letscheck-client/internal/common/validation"
	"letscheck-client/internal/features/report/models"
)

// Submitter is the backend-facing report operation.
type Submitter interface {
	SubmitReport(ctx context.Context, draft models.Draft) error
}

type ReportService struct {
	submitter Submitter
}

func NewReportService(submitter Submitter) *ReportService {
	return &ReportService{submitter: submitter}
}

// Validate applies the dialog's submit gate: report type and reason must
// both be non-empty, the email may be empty.
func (s *ReportService) Validate(draft models.Draft) error {
	if draft.DocumentHash == "" {
		return commonerrors.NewValidationError("document_hash", "must not be empty")
	}
	if draft.ReportType == "" {
		return commonerrors.NewValidationError("report_type", "must not be empty")
	}
	if !validation.IsReportType(string(draft.ReportType)) {
		return commonerrors.NewValidationError("report_type", "must be one of FAKE, ALTERED, UNAUTHORIZED, OTHER")
	}
	if strings.TrimSpace(draft.Reason) == "" {
		return commonerrors.NewValidationError("reason", "must not be empty")
	}
	return nil
}

// Submit validates and files the draft. On failure the caller keeps the
// entered values; nothing is retried automatically.
func (s *ReportService) Submit(ctx context.Context, draft models.Draft) error {
	if err := s.Validate(draft); err != nil {
		return err
	}

	if err := s.submitter.SubmitReport(ctx, draft); err != nil {
		logger.Error().Err(err).Str("document_hash", draft.DocumentHash).Msg("report submission failed")
		return err
	}

	logger.Info().Str("document_hash", draft.DocumentHash).Str("report_type", string(draft.ReportType)).Msg("report submitted")
	return nil
}
