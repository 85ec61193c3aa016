package main

import (
	"os"

	"github.com/solobank-dev/solobank/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
