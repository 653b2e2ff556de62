// Command main imports the SWAPI catalog or a fake demo catalog into the database.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"holocron/internal/bootstrap"
	"holocron/internal/config"
	"holocron/internal/importer"
	"holocron/internal/repository"
	"holocron/internal/seed"
	"holocron/internal/swapi"
)

func main() {
	people := flag.Int("people", importer.DefaultLimit, "Maximum new people to import from SWAPI (0 or below skips people)")
	planets := flag.Int("planets", importer.DefaultLimit, "Maximum new planets to import from SWAPI (0 or below skips planets)")
	demo := flag.Int("demo", 0, "Insert N fake planets and N fake people instead of calling SWAPI")
	shouldClean := flag.Bool("clean", false, "Remove favorites, people and planets before seeding")
	flag.Parse()

	log.Println("Catalog Seeder")
	log.Println("==============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{EnsureCurrentUser: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := seed.NewSeeder(db)
	if *shouldClean {
		if err := s.ClearCatalog(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Println("Catalog cleared")
	}

	if *demo > 0 {
		p, ppl, err := s.DemoCatalog(ctx, *demo)
		if err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
		log.Printf("Demo catalog: %d planets, %d people\n", p, ppl)
		return
	}

	source := swapi.NewClient(cfg.SwapiBaseURL, cfg.SwapiUserAgent, cfg.SwapiTimeout())
	imp := importer.New(source, repository.NewPlanetRepository(db), repository.NewPeopleRepository(db))

	log.Printf("Target: %d planets, %d people from %s\n", *planets, *people, cfg.SwapiBaseURL)
	res, err := imp.Run(ctx, importer.Options{PlanetsLimit: *planets, PeopleLimit: *people})
	if err != nil {
		log.Fatalf("SWAPI import failed after %d planets and %d people: %v", res.Planets, res.People, err)
	}
	log.Printf("SWAPI import finished: %d planets, %d people\n", res.Planets, res.People)
}
