package suggestion

import (
	"community-bot/model"
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetOrFetchReturnsCached(t *testing.T) {
	engine, session, _ := newTestEngine(guildConfig())
	want := cachedEntry(engine, "100", "author-1")

	got, err := engine.Registry().GetOrFetch(context.Background(), testGuildID, "", "100")
	require.NoError(t, err)
	assert.Same(t, want, got)
	session.AssertNotCalled(t, "ChannelMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrFetchHydratesFromChannelHistory(t *testing.T) {
	engine, session, _ := newTestEngine(guildConfig())
	registry := engine.Registry()

	msg := botMessage("100", "author-1")
	msg.Content = "Flagged: DECLINE | ❌"
	msg.Reactions = []*discordgo.MessageReactions{
		{Emoji: &discordgo.Emoji{Name: model.UpvoteEmoji}, Count: 6},
		{Emoji: &discordgo.Emoji{Name: model.DownvoteEmoji}, Count: 2},
	}
	session.On("ChannelMessages", testChannelID, 1, "101", "99", "").Return([]*discordgo.Message{msg}, nil)

	entry, err := registry.GetOrFetch(context.Background(), testGuildID, "", "100")
	require.NoError(t, err)

	assert.Equal(t, "author-1", entry.AuthorID)
	assert.Equal(t, "100", entry.ThreadID)
	assert.Equal(t, 6, entry.Upvotes)
	assert.Equal(t, 2, entry.Downvotes)
	assert.Equal(t, model.FlagDecline, entry.Flag)

	// Hydration populates the cache, so a second lookup skips the fetch.
	_, err = registry.GetOrFetch(context.Background(), testGuildID, "", "100")
	require.NoError(t, err)
	session.AssertNumberOfCalls(t, "ChannelMessages", 1)
}

func TestGetOrFetchMissing(t *testing.T) {
	engine, session, _ := newTestEngine(guildConfig())

	session.On("ChannelMessages", testChannelID, 1, "101", "99", "").Return([]*discordgo.Message{}, nil)

	_, err := engine.Registry().GetOrFetch(context.Background(), testGuildID, "", "100")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrFetchRejectsForeignAuthor(t *testing.T) {
	engine, session, _ := newTestEngine(guildConfig())

	msg := botMessage("100", "author-1")
	msg.Author = &discordgo.User{ID: "someone-else"}
	session.On("ChannelMessages", testChannelID, 1, "101", "99", "").Return([]*discordgo.Message{msg}, nil)

	_, err := engine.Registry().GetOrFetch(context.Background(), testGuildID, "", "100")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrFetchRejectsAdjacentMessage(t *testing.T) {
	engine, session, _ := newTestEngine(guildConfig())

	// The one-message window can return a neighbour when the target is gone.
	session.On("ChannelMessages", testChannelID, 1, "101", "99", "").
		Return([]*discordgo.Message{botMessage("99", "author-1")}, nil)

	_, err := engine.Registry().GetOrFetch(context.Background(), testGuildID, "", "100")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrFetchNonNumericID(t *testing.T) {
	engine, session, _ := newTestEngine(guildConfig())

	_, err := engine.Registry().GetOrFetch(context.Background(), testGuildID, "", "not-a-snowflake")
	assert.ErrorIs(t, err, ErrNotFound)
	session.AssertNotCalled(t, "ChannelMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrFetchWithoutConfiguredChannel(t *testing.T) {
	engine, _, _ := newTestEngine(&model.GuildConfig{GuildID: testGuildID})

	_, err := engine.Registry().GetOrFetch(context.Background(), testGuildID, "", "100")
	assert.ErrorIs(t, err, ErrChannelNotConfigured)
}

func TestInvalidateEvicts(t *testing.T) {
	engine, _, _ := newTestEngine(guildConfig())
	registry := engine.Registry()
	cachedEntry(engine, "100", "author-1")

	registry.Invalidate("100")

	_, ok := registry.Get("100")
	assert.False(t, ok)
}

func TestUpdateSnapshotReplacesMessage(t *testing.T) {
	engine, _, _ := newTestEngine(guildConfig())
	registry := engine.Registry()
	cachedEntry(engine, "100", "author-1")

	edited := botMessage("100", "author-1")
	edited.Embeds[0].Description = "Add light mode too"
	registry.UpdateSnapshot(edited)

	entry, ok := registry.Get("100")
	require.True(t, ok)
	assert.Equal(t, "Add light mode too", entry.Message.Embeds[0].Description)

	// Snapshots for unknown messages are dropped silently.
	registry.UpdateSnapshot(botMessage("999", "author-1"))
	_, ok = registry.Get("999")
	assert.False(t, ok)
}

func TestAuthorFromFooter(t *testing.T) {
	assert.Equal(t, "42", authorFromFooter(botMessage("100", "42")))
	assert.Empty(t, authorFromFooter(&discordgo.Message{}))
	assert.Empty(t, authorFromFooter(&discordgo.Message{
		Embeds: []*discordgo.MessageEmbed{{Footer: &discordgo.MessageEmbedFooter{Text: "no separator"}}},
	}))
}

func TestFlagFromContent(t *testing.T) {
	assert.Equal(t, model.FlagApproved, flagFromContent("Flagged: APPROVED | ✅"))
	assert.Equal(t, model.FlagNone, flagFromContent(""))
	assert.Equal(t, model.FlagNone, flagFromContent("Flagged: BANANA | 🍌"))
	assert.Equal(t, model.FlagNone, flagFromContent("unrelated text"))
}

func TestSnowflakeWindow(t *testing.T) {
	before, after, ok := snowflakeWindow("100")
	require.True(t, ok)
	assert.Equal(t, "101", before)
	assert.Equal(t, "99", after)

	_, _, ok = snowflakeWindow("abc")
	assert.False(t, ok)
	_, _, ok = snowflakeWindow("0")
	assert.False(t, ok)
}
