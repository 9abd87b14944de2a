package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/domain"
)

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <peer-user-id>",
		Short: "Decrypt an envelope from stdin, printing the plaintext",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("user ID required (-u)")
			}
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			env, err := domain.DecodeEnvelope(data)
			if err != nil {
				return err
			}
			pt, err := wire.Messages.Decrypt(password, user, args[0], env)
			if err != nil {
				return err
			}
			os.Stdout.Write(pt)
			return nil
		},
	}
}
