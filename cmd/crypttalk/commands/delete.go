package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-session <peer-user-id>",
		Short: "Destroy the ratchet state for a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("user ID required (-u)")
			}
			if err := wire.Messages.DeleteSession(user, args[0]); err != nil {
				return err
			}
			fmt.Println("Session deleted.")
			return nil
		},
	}
}
