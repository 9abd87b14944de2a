package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func encryptCmd() *cobra.Command {
	var peerKeyPath string

	cmd := &cobra.Command{
		Use:   "encrypt <peer-user-id>",
		Short: "Encrypt stdin for a peer, printing the wire envelope",
		Long: "Reads plaintext from stdin and prints the envelope JSON. The first\n" +
			"message to a peer needs --peer-key pointing at their exported PEM\n" +
			"public key; afterwards the existing session is used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("user ID required (-u)")
			}
			plaintext, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			var peerKey []byte
			if peerKeyPath != "" {
				peerKey, err = os.ReadFile(peerKeyPath)
				if err != nil {
					return err
				}
			}
			env, err := wire.Messages.Encrypt(user, args[0], peerKey, plaintext)
			if err != nil {
				return err
			}
			out, err := env.Encode()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&peerKeyPath, "peer-key", "", "peer public key PEM (first message only)")
	return cmd
}
