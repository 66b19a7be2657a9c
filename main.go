package main

import (
	"community-bot/bot"
	"community-bot/config"
	"community-bot/handlers"
	"community-bot/utils/database"
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Printf("Warning: Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	db, err := database.InitEventLog(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Error initializing event store: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, mongoDB, err := database.Connect(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	guildConfigs := database.NewGuildConfigStore(mongoDB)

	b, err := bot.New(cfg, db, mongoClient, guildConfigs)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}
	defer b.Close()

	handlers.Register(b)

	b.Run()
}
