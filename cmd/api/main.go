package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/myplate-diets/backend/config"
	"github.com/pageza/myplate-diets/backend/internal/database"
	"github.com/pageza/myplate-diets/backend/internal/reference"
	"github.com/pageza/myplate-diets/backend/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Reference lists are required; the classifier cannot run without them
	source, err := reference.SourceFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to configure reference source: %v", err)
	}
	ref, err := reference.LoadAll(ctx, reference.NewLoader(source))
	if err != nil {
		var missing *reference.MissingReferenceFileError
		if errors.As(err, &missing) {
			log.Fatalf("Reference list for %s not found at %s", missing.Category, missing.Location)
		}
		log.Fatalf("Failed to load reference data: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis is optional: without it results are not cached and /classify is not rate limited
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Printf("Warning: continuing without Redis: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	srv := server.New(cfg, db, ref, redisClient)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
