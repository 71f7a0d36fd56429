package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/abhisek/lingoz/cmd"
)

func main() {
	// API keys may live in a local .env during development.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
