package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"letscheck-client/internal/common/config"
	"letscheck-client/internal/common/logger"
	historyrepo "letscheck-client/internal/features/history/repository"
	historyfile "letscheck-client/internal/features/history/repository/file"
	"letscheck-client/internal/platform/api"
)

var (
	cfg        *config.Config
	jsonOutput bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "letscheck",
		Short: "Let's Check - vérification d'authenticité de documents",
		Long: `Client de vérification d'authenticité de documents.

Soumettez un document (fichier, QR code ou hash SHA-256), obtenez un
verdict du service de vérification et consultez votre historique local.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			logger.Init("letscheck", cfg.Debug)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of formatted output")

	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(stubCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newAPIClient() *api.Client {
	return api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSec)*time.Second)
}

func newHistoryRepository() (historyrepo.HistoryRepository, error) {
	path := cfg.History.Path
	if path == "" {
		var err error
		path, err = historyfile.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return historyfile.NewRepository(path), nil
}
