package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sethia-shubhamm/Crypt-Talk/internal/app"
)

var (
	home     string
	password string
	user     string
	harden   bool
	verbose  bool

	wire *app.Wire
)

// Execute builds the command tree and runs it.
func Execute() error {
	root := &cobra.Command{
		Use:   "crypttalk",
		Short: "End-to-end encrypted messaging core CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".crypttalk")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			wire = app.NewWire(app.Config{Home: home, Harden: harden, Verbose: verbose})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.crypttalk)")
	root.PersistentFlags().StringVarP(&password, "password", "p", "", "password protecting the identity key")
	root.PersistentFlags().StringVarP(&user, "user", "u", "", "local user ID")
	root.PersistentFlags().BoolVar(&harden, "harden", false, "apply the layered cipher pipeline")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(initCmd(), fingerprintCmd(), exportKeyCmd(), encryptCmd(), decryptCmd(), deleteSessionCmd())
	return root.Execute()
}
