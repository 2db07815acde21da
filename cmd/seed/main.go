// Command main runs the demo data seeder for the job board.
package main

import (
	"flag"
	"log"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/seed"
)

func main() {
	preset := flag.String("preset", "demo", "seed preset: small, demo or large")
	posters := flag.Int("posters", -1, "override the preset's number of posters")
	doers := flag.Int("doers", -1, "override the preset's number of doers")
	shouldClean := flag.Bool("clean", false, "delete all existing rows before seeding")
	dryRun := flag.Bool("dry-run", false, "generate data without writing it")
	fast := flag.Bool("fast", false, "hash the seed password with the minimum bcrypt cost")
	flag.Parse()

	opts, err := seed.LookupPreset(*preset)
	if err != nil {
		log.Fatal(err)
	}
	if *posters >= 0 {
		opts.Posters = *posters
	}
	if *doers >= 0 {
		opts.Doers = *doers
	}
	opts.DryRun = *dryRun
	opts.FastHash = *fast

	log.Printf("Seeding preset %q: %d posters, %d doers, clean=%v dry-run=%v",
		*preset, opts.Posters, opts.Doers, *shouldClean, *dryRun)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s, err := seed.NewSeeder(db, opts)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	res, err := s.Run()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done: %s", res)
	log.Printf("All seeded accounts use the password %q", seed.DefaultPassword)
}
