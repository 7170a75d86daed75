package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	commonerrors "letscheck-client/internal/common/errors"
	"letscheck-client/internal/common/logger"
	"letscheck-client/internal/features/report/models"
	reportservice "letscheck-client/internal/features/report/service"
)

var reportTypeLabels = []struct {
	Type  models.ReportType
	Label string
}{
	{models.ReportFake, "Document Falsifié"},
	{models.ReportAltered, "Document Altéré"},
	{models.ReportUnauthorized, "Signature Non Autorisée"},
	{models.ReportOther, "Autre"},
}

func reportCmd() *cobra.Command {
	var (
		flagType   string
		flagReason string
		flagEmail  string
	)

	cmd := &cobra.Command{
		Use:   "report <hash>",
		Short: "Signaler un document suspect",
		Long: `Signaler un document suspect au service de vérification.

Sans options, les informations manquantes sont demandées interactivement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			draft := models.Draft{
				DocumentHash:  strings.TrimSpace(args[0]),
				ReportType:    models.ReportType(strings.ToUpper(flagType)),
				Reason:        flagReason,
				ReporterEmail: flagEmail,
			}
			interactive := flagType == "" || strings.TrimSpace(flagReason) == ""

			in := bufio.NewReader(os.Stdin)
			if draft.ReportType == "" {
				reportType, err := promptReportType(in)
				if err != nil {
					return err
				}
				draft.ReportType = reportType
			}
			for strings.TrimSpace(draft.Reason) == "" {
				fmt.Print("Veuillez décrire le problème : ")
				line, err := in.ReadString('\n')
				if err != nil {
					return commonerrors.NewValidationError("reason", "must not be empty")
				}
				draft.Reason = strings.TrimSpace(line)
			}
			if interactive && draft.ReporterEmail == "" {
				fmt.Print("Votre email (optionnel) : ")
				line, _ := in.ReadString('\n')
				draft.ReporterEmail = strings.TrimSpace(line)
			}

			client := newAPIClient()
			if err := client.EnsureCSRF(ctx); err != nil {
				// The backend may not require CSRF on API posts; keep going.
				logger.Debug().Err(err).Msg("csrf priming failed")
			}
			svc := reportservice.NewReportService(client)

			// The entered values survive a failed submission; the user
			// decides whether to retry, nothing is retried automatically.
			for {
				err := svc.Submit(ctx, draft)
				if err == nil {
					fmt.Println("Signalement envoyé. Merci.")
					return nil
				}
				if commonerrors.HasCode(err, commonerrors.ErrCodeValidation) {
					return err
				}

				fmt.Println("Échec de l'envoi du signalement.")
				if !interactive {
					return err
				}
				fmt.Print("Réessayer ? [o/N] ")
				answer, _ := in.ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "o", "oui":
					continue
				default:
					return err
				}
			}
		},
	}

	cmd.Flags().StringVar(&flagType, "type", "", "type de signalement (FAKE, ALTERED, UNAUTHORIZED, OTHER)")
	cmd.Flags().StringVar(&flagReason, "reason", "", "description du problème")
	cmd.Flags().StringVar(&flagEmail, "email", "", "email du rapporteur (optionnel)")

	return cmd
}

func promptReportType(in *bufio.Reader) (models.ReportType, error) {
	fmt.Println("Type de signalement :")
	for i, entry := range reportTypeLabels {
		fmt.Printf("  %d. %s\n", i+1, entry.Label)
	}

	for {
		fmt.Print("Votre choix [1-4] : ")
		line, err := in.ReadString('\n')
		if err != nil {
			return "", commonerrors.NewValidationError("report_type", "must not be empty")
		}
		switch strings.TrimSpace(line) {
		case "1":
			return models.ReportFake, nil
		case "2":
			return models.ReportAltered, nil
		case "3":
			return models.ReportUnauthorized, nil
		case "4":
			return models.ReportOther, nil
		}
		fmt.Println("Choix invalide.")
	}
}
