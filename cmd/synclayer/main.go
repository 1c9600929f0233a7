package main

import (
	"os"

	"synclayer/cmd/synclayer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
