package config

import (
	"community-bot/model"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load loads the configuration from environment variables.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("Error: MONGODB_URI environment variable not set")
	}

	mongoDatabase := os.Getenv("MONGODB_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "community_bot"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "data/events.db"
	}

	logWebhookURL := os.Getenv("LOG_WEBHOOK_URL")
	if logWebhookURL == "" {
		log.Println("Warning: LOG_WEBHOOK_URL not set, channel logging will be disabled")
	}

	cfg := &model.Config{
		BotToken:         token,
		AppID:            appID,
		MongoURI:         mongoURI,
		MongoDatabase:    mongoDatabase,
		SQLitePath:       sqlitePath,
		LogWebhookURL:    logWebhookURL,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		DeveloperUserIDs: splitIDs(os.Getenv("DEVELOPER_USER_IDS")),
	}

	return cfg, nil
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
