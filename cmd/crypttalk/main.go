package main

import (
	"os"

	"github.com/sethia-shubhamm/Crypt-Talk/cmd/crypttalk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
