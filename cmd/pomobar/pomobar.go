package main

import (
	"context"
	"errors"
	"log"
	"os"

	"tableflip.dev/pomobar/pkg/commands"
)

func main() {
	if err := commands.New().ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, commands.ErrNoCommand) {
			os.Exit(2)
		}
		log.Fatalf("error during command execution: %v", err)
	}
}
