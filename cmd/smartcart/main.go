package main

import (
	"os"

	"github.com/smartcart-dev/smartcart/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
