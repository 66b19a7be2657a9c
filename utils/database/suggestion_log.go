package database

import (
	"community-bot/model"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// InitEventLog opens the local SQLite store and ensures the audit table
// exists.
func InitEventLog(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	eventsSchema := `CREATE TABLE IF NOT EXISTS suggestion_events (
	          id INTEGER PRIMARY KEY AUTOINCREMENT,
	          guild_id TEXT NOT NULL,
	          message_id TEXT NOT NULL,
	          actor_id TEXT NOT NULL,
	          action TEXT NOT NULL,
	          detail TEXT DEFAULT '',
	          created_at INTEGER NOT NULL
	      );`
	if _, err = db.Exec(eventsSchema); err != nil {
		return nil, fmt.Errorf("failed to create suggestion_events table: %w", err)
	}

	return db, nil
}

// EventLog appends suggestion lifecycle actions to the audit table. It
// satisfies the engine's Recorder interface.
type EventLog struct {
	db *sqlx.DB
}

// NewEventLog wraps an opened SQLite handle.
func NewEventLog(db *sqlx.DB) *EventLog {
	return &EventLog{db: db}
}

// Record inserts one audit row.
func (l *EventLog) Record(action, guildID, messageID, actorID, detail string) error {
	event := model.SuggestionEvent{
		GuildID:   guildID,
		MessageID: messageID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().Unix(),
	}
	query := `INSERT INTO suggestion_events (guild_id, message_id, actor_id, action, detail, created_at)
			  VALUES (:guild_id, :message_id, :actor_id, :action, :detail, :created_at)`
	if _, err := l.db.NamedExec(query, event); err != nil {
		return fmt.Errorf("failed to insert suggestion event: %w", err)
	}
	return nil
}

// CountEvents returns the total number of recorded actions, used by the
// owner diagnostics embed.
func CountEvents(db *sqlx.DB) (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM suggestion_events"); err != nil {
		return 0, fmt.Errorf("failed to count suggestion events: %w", err)
	}
	return count, nil
}
