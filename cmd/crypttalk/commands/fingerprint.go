package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the identity public-key fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("password required (-p)")
			}
			fp, err := wire.IDs.Fingerprint(password)
			if err != nil {
				return err
			}
			fmt.Println(fp)
			return nil
		},
	}
}
