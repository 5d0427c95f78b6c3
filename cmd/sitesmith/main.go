package main

import (
	"github.com/joho/godotenv"

	"github.com/stacklight-labs/sitesmith/internal/adapters/driving/cli"
)

func main() {
	// Best effort: a missing .env file is fine.
	_ = godotenv.Load()

	cli.Execute()
}
