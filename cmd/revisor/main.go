package main

import (
	"log"

	"revisor/internal/app"
	"revisor/internal/logging"
	"revisor/pkg/db/postgres"
	"revisor/pkg/git"
)

func main() {
	logging.Init()
	log.Println("Starting revisor core...")

	if err := postgres.InitDB(); err != nil {
		log.Fatalf("Failed to init postgres: %v", err)
	}
	if err := git.InitStore(); err != nil {
		log.Fatalf("Failed to init repository store: %v", err)
	}

	if err := app.NewApp(postgres.GetDB()).Run(); err != nil {
		log.Fatal(err)
	}
}
