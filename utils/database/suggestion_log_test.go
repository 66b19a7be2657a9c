package database

import (
	"community-bot/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogRecordAndCount(t *testing.T) {
	db, err := InitEventLog(":memory:")
	require.NoError(t, err)
	defer db.Close()

	log := NewEventLog(db)
	require.NoError(t, log.Record("submit", "guild-1", "100", "author-1", "Add dark mode"))
	require.NoError(t, log.Record("flag", "guild-1", "100", "mod-1", "APPROVED"))

	count, err := CountEvents(db)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var events []model.SuggestionEvent
	require.NoError(t, db.Select(&events, "SELECT * FROM suggestion_events ORDER BY id"))
	require.Len(t, events, 2)
	assert.Equal(t, "submit", events[0].Action)
	assert.Equal(t, "Add dark mode", events[0].Detail)
	assert.Equal(t, "mod-1", events[1].ActorID)
	assert.NotZero(t, events[1].CreatedAt)
}

func TestCountEventsEmpty(t *testing.T) {
	db, err := InitEventLog(":memory:")
	require.NoError(t, err)
	defer db.Close()

	count, err := CountEvents(db)
	require.NoError(t, err)
	assert.Zero(t, count)
}
