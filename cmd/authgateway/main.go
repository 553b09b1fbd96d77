package main

import (
	"context"
	"log"
	"os"

	"auth-gateway/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	log.SetOutput(os.Stderr)

	ctx := context.Background()

	service, err := app.NewService(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	if err := service.Start(ctx); err != nil {
		log.Fatalf("Failed to start service: %v", err)
	}
}
