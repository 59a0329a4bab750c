package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"sheetops/app"
	"sheetops/internal/config"
	"sheetops/internal/container"

	"github.com/joho/godotenv"
)

// Runs every walkthrough in order against the configured data directory
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	c, err := container.New(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("failed to initialize container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := c.Combine.Run(ctx, app.CombineRequest{}); err != nil {
		log.Fatalf("combine: %v", err)
	}
	if _, err := c.ExcelTasks.Run(ctx); err != nil {
		log.Fatalf("excel tasks: %v", err)
	}
	if _, err := c.Filter.Run(ctx, app.DefaultFilterRequest()); err != nil {
		log.Fatalf("filter: %v", err)
	}
	if _, err := c.DTypes.Run(ctx); err != nil {
		log.Fatalf("dtypes: %v", err)
	}
}
