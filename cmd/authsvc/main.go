package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/RPleshkov/SessionVault/internal/app"
	"github.com/RPleshkov/SessionVault/internal/config"
)

func main() {
	// .env is optional; the config file is the source of truth.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
