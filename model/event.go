package model

// SuggestionEvent is one audit-log row for a suggestion lifecycle action.
type SuggestionEvent struct {
	ID        int64  `db:"id"`
	GuildID   string `db:"guild_id"`
	MessageID string `db:"message_id"`
	ActorID   string `db:"actor_id"`
	Action    string `db:"action"`
	Detail    string `db:"detail"`
	CreatedAt int64  `db:"created_at"`
}
