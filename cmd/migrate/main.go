package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/pageza/myplate-diets/backend/config"
	"github.com/pageza/myplate-diets/backend/internal/database"
	"github.com/pageza/myplate-diets/backend/internal/model"
)

func main() {
	drop := flag.Bool("drop", false, "Drop the recipes table before migrating")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *drop {
		if err := db.Migrator().DropTable(&model.Recipe{}); err != nil {
			log.Fatalf("Failed to drop recipes table: %v", err)
		}
		log.Println("Dropped recipes table")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Migrated %s database", cfg.DBDriver)
}
