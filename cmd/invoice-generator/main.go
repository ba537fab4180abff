package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"invoice-generator/internal/handlers"
	u "invoice-generator/internal/utils"
)

func main() {
	cfg, err := u.LoadConfig()
	log := u.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	h, err := handlers.NewFromConfig(cfg, log)
	if err != nil {
		log.Fatal("Failed to build invoice handler", "error", err)
	}

	lambda.Start(h.Process)
}
