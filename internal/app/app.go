package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"revisor/internal/notifier"
	"revisor/pkg/db/redis"
)

type App struct {
	db *gorm.DB
}

func NewApp(db *gorm.DB) *App {
	return &App{db: db}
}

// Run wires the optional Redis connection, starts the review-reminder loop
// and blocks until a shutdown signal arrives. The HTTP layer is an external
// collaborator and mounts the services on its own.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := redis.InitRedis(ctx); err != nil {
		log.Printf("redis unavailable, events degraded to log-only: %v", err)
	}

	go notifier.CheckReminders(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	sig := <-quit
	log.Printf("Received signal: %s. Shutting down...", sig)
	cancel()
	return nil
}
