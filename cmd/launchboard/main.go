package main

import (
	"os"

	"github.com/backyonatan-alt/launchboard/cmd/launchboard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
