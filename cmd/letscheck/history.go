package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vercli "letscheck-client/internal/features/verification/delivery/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Consulter l'historique local de vérification",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Afficher les dernières vérifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := newHistoryRepository()
			if err != nil {
				return err
			}
			entries, err := repo.Load()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			vercli.RenderHistory(os.Stdout, entries)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Effacer l'historique",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := newHistoryRepository()
			if err != nil {
				return err
			}
			if err := repo.Clear(); err != nil {
				return err
			}
			fmt.Println("Historique effacé.")
			return nil
		},
	})

	return cmd
}
