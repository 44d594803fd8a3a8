package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/spendlens/spendlens/internal/commands"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
