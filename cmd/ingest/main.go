package main

import (
	"log"

	"PaymentWebhooks/config"
	"PaymentWebhooks/internal/ingest"
)

func main() {
	cfg, err := config.NewIngestConfig()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}
	if err := ingest.Run(cfg); err != nil {
		log.Fatalf("Ingest error: %s", err)
	}
}
