package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"letscheck-client/internal/common/logger"
	vercli "letscheck-client/internal/features/verification/delivery/cli"
	"letscheck-client/internal/features/verification/models"
	"letscheck-client/internal/features/verification/service"
	"letscheck-client/internal/platform/qr"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Vérifier l'authenticité d'un document",
	}

	cmd.AddCommand(verifyFileCmd())
	cmd.AddCommand(verifyHashCmd())
	cmd.AddCommand(verifyQRCmd())

	return cmd
}

func verifyFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file <chemin>",
		Short: "Calculer le hash d'un fichier et le vérifier",
		Long:  `Formats acceptés : PDF, JPG, PNG, DOCX (max 10 Mo).`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				logger.Warn().Int("ignored", len(args)-1).Msg("un seul fichier par vérification, seul le premier est traité")
			}
			return runVerification(cmd.Context(), func(ctx context.Context, ctrl *service.Controller) (*models.VerificationResult, error) {
				return ctrl.VerifyFile(ctx, args[0])
			})
		},
	}
}

func verifyHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <sha256>",
		Short: "Vérifier un hash SHA-256 saisi manuellement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerification(cmd.Context(), func(ctx context.Context, ctrl *service.Controller) (*models.VerificationResult, error) {
				return ctrl.VerifyManualInput(ctx, args[0])
			})
		},
	}
}

func verifyQRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qr <image>",
		Short: "Décoder un QR code depuis une image et vérifier son contenu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			scanner := qr.NewScanner(qr.NewFileSource(args[0]))
			decoded, err := scanner.Scan(ctx)
			if err != nil {
				return err
			}
			logger.Debug().Str("decoded", decoded).Msg("QR code decoded")

			return runVerification(ctx, func(ctx context.Context, ctrl *service.Controller) (*models.VerificationResult, error) {
				return ctrl.VerifyScannedCode(ctx, decoded)
			})
		},
	}
}

// runVerification wires one submission through the controller and renders
// the verdict.
func runVerification(ctx context.Context, submit func(context.Context, *service.Controller) (*models.VerificationResult, error)) error {
	history, err := newHistoryRepository()
	if err != nil {
		return err
	}

	client := newAPIClient()
	if err := client.EnsureCSRF(ctx); err != nil {
		// The backend may not require CSRF on API posts; keep going.
		logger.Debug().Err(err).Msg("csrf priming failed")
	}

	ctrl := service.NewController(client, history)
	result, err := submit(ctx, ctrl)
	if err != nil {
		return err
	}

	if jsonOutput {
		return vercli.RenderResultJSON(os.Stdout, result)
	}
	vercli.RenderResult(os.Stdout, result)
	return nil
}
