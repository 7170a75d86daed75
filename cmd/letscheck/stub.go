package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"letscheck-client/internal/common/logger"
	"letscheck-client/internal/stub"
)

func stubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stub",
		Short: "Démarrer un backend de développement local",
		Long: `Démarre un service de vérification factice sur le port configuré,
pré-rempli avec quelques documents de démonstration. Réservé au
développement : aucune donnée n'est persistée.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := stub.NewServer(cfg.Stub.Origin, cfg.Debug)

			seed := func(label string, status stub.DocumentStatus) string {
				sum := sha256.Sum256([]byte(label))
				hash := hex.EncodeToString(sum[:])
				server.Register(stub.Document{
					Hash:        hash,
					Institution: "Université de Démonstration",
					SignedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
					Status:      status,
				})
				return hash
			}

			logger.Info().Str("hash", seed("demo-authentic", stub.StatusAuthentic)).Msg("seeded AUTHENTIC document")
			logger.Info().Str("hash", seed("demo-revoked", stub.StatusRevoked)).Msg("seeded REVOKED document")
			logger.Info().Str("hash", seed("demo-tampered", stub.StatusTampered)).Msg("seeded INVALID_SIGNATURE document")

			addr := fmt.Sprintf(":%d", cfg.Stub.Port)
			logger.Info().Str("addr", addr).Msg("stub backend listening")
			return server.Run(addr)
		},
	}
}
