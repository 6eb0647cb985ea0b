package main

// go run ./cmd/port_registry serve

import (
	"os"

	"port_registry/cmd/port_registry/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
