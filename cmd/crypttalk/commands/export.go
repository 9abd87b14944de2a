package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func exportKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-key",
		Short: "Print the public key as PEM for sharing with peers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("password required (-p)")
			}
			pemBytes, err := wire.IDs.ExportPublicPEM(password)
			if err != nil {
				return err
			}
			fmt.Print(string(pemBytes))
			return nil
		},
	}
}
