// Command main runs the database seeder for Commons.
package main

import (
	"context"
	"flag"
	"log"

	"commons/internal/config"
	"commons/internal/database"
	"commons/internal/seed"
)

func main() {
	demo := flag.Int("demo", 0, "Number of demo discussions to generate after the built-in seed")
	maxDays := flag.Int("max-days", 90, "How many days back demo discussion dates may go")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	res, err := seed.Apply(ctx, db)
	if err != nil {
		log.Fatalf("Built-in seeding failed: %v", err)
	}
	log.Printf("Seeded %d users, %d live events, %d videos", res.Users, res.LiveEvents, res.Videos)

	if *demo > 0 {
		f := seed.NewFactory(db, seed.Options{MaxDays: *maxDays})
		discussions, err := f.SeedDiscussions(ctx, *demo)
		if err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
		log.Printf("Generated %d demo discussions", len(discussions))
	}

	log.Println("Seeding completed")
}
