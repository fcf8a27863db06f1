// Command main runs the database seeder for development environments.
package main

import (
	"context"
	"flag"
	"log"

	"deckvault/internal/config"
	"deckvault/internal/database"
	"deckvault/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numDecks := flag.Int("decks", 200, "Number of decks to publish")
	maxDays := flag.Int("max-days", 90, "How far back to spread publication dates")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d decks, clean=%v", *numUsers, *numDecks, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers: *numUsers,
		NumDecks: *numDecks,
		MaxDays:  *maxDays,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is now populated with test data.")
}
