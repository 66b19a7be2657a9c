package suggestion

import (
	"community-bot/model"
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrChannelNotConfigured means the guild has no suggestion channel set.
	ErrChannelNotConfigured = errors.New("no suggestion channel is set up for this server")
	// ErrNotFound means the target message or thread is missing or was not
	// posted by the bot.
	ErrNotFound = errors.New("suggestion not found")
	// ErrNotOwner means the requester does not own the suggestion.
	ErrNotOwner = errors.New("you don't own that suggestion")
	// ErrInvalidFlag means the keyword is outside the flag vocabulary.
	ErrInvalidFlag = errors.New("invalid flag")
)

// Registry is the in-process index of active suggestions by message ID.
// It is rebuilt lazily from channel history and never flushed to durable
// storage; the rendered message's reactions stay the recoverable ground
// truth after a restart.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*model.SuggestionEntry
	botID   string

	session model.DiscordSession
	configs model.GuildConfigProvider
}

// NewRegistry creates an empty registry backed by the given session and
// guild configuration provider.
func NewRegistry(session model.DiscordSession, configs model.GuildConfigProvider) *Registry {
	return &Registry{
		entries: make(map[string]*model.SuggestionEntry),
		session: session,
		configs: configs,
	}
}

// SetBotUser records the bot's own user ID, used to verify that a fetched
// message was authored by the bot. Called once on Ready.
func (r *Registry) SetBotUser(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.botID = id
}

// BotID returns the bot's own user ID.
func (r *Registry) BotID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.botID
}

// Put registers a freshly created entry.
func (r *Registry) Put(entry *model.SuggestionEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.MessageID] = entry
}

// Get returns the cached entry, if any.
func (r *Registry) Get(messageID string) (*model.SuggestionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[messageID]
	return entry, ok
}

// Invalidate evicts an entry. Called on message-delete notifications.
func (r *Registry) Invalidate(messageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, messageID)
}

// GetOrFetch returns the cached entry or reconstructs it with a bounded
// history scan of one message around the target ID. The channel ID may be
// empty, in which case the guild's configured suggestion channel is used.
func (r *Registry) GetOrFetch(ctx context.Context, guildID, channelID, messageID string) (*model.SuggestionEntry, error) {
	if entry, ok := r.Get(messageID); ok {
		return entry, nil
	}

	if channelID == "" {
		cfg, err := r.configs.GuildConfig(ctx, guildID)
		if err != nil {
			return nil, err
		}
		if cfg.SuggestionChannel == "" {
			return nil, ErrChannelNotConfigured
		}
		channelID = cfg.SuggestionChannel
	}

	before, after, ok := snowflakeWindow(messageID)
	if !ok {
		return nil, ErrNotFound
	}
	msgs, err := r.session.ChannelMessages(channelID, 1, before, after, "")
	if err != nil || len(msgs) == 0 {
		return nil, ErrNotFound
	}

	msg := msgs[0]
	if msg.ID != messageID || msg.Author == nil || msg.Author.ID != r.BotID() {
		return nil, ErrNotFound
	}

	entry := &model.SuggestionEntry{
		MessageID: msg.ID,
		GuildID:   guildID,
		ChannelID: channelID,
		AuthorID:  authorFromFooter(msg),
		ThreadID:  threadIDOf(msg),
		Upvotes:   reactionCount(msg, model.UpvoteEmoji),
		Downvotes: reactionCount(msg, model.DownvoteEmoji),
		Flag:      flagFromContent(msg.Content),
		Message:   msg,
	}
	r.Put(entry)
	return entry, nil
}

// ApplyVoteDelta bumps the matching vote counter. No-op when the entry is
// not cached or when the reacting user is the bot itself, so gateway
// echoes of the seed reactions never move a fresh entry off 0/0. No floor
// is enforced, counters are applied as received.
func (r *Registry) ApplyVoteDelta(messageID, emoji, userID string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if userID == r.botID {
		return
	}
	entry, ok := r.entries[messageID]
	if !ok {
		return
	}
	switch normalizeEmoji(emoji) {
	case model.UpvoteEmoji:
		entry.Upvotes += delta
	case model.DownvoteEmoji:
		entry.Downvotes += delta
	}
}

// UpdateSnapshot replaces the rendered-message snapshot for a cached entry.
func (r *Registry) UpdateSnapshot(msg *discordgo.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[msg.ID]; ok {
		entry.Message = msg
	}
}

// Stats returns the vote counters for a cached entry.
func (r *Registry) Stats(messageID string) (upvotes, downvotes int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, found := r.entries[messageID]
	if !found {
		return 0, 0, false
	}
	return entry.Upvotes, entry.Downvotes, true
}

func (r *Registry) setFlag(messageID string, flag model.FlagKind, msg *discordgo.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[messageID]; ok {
		entry.Flag = flag
		if msg != nil {
			entry.Message = msg
		}
	}
}

// snowflakeWindow computes the one-message history window (id-1, id+1)
// around a snowflake.
func snowflakeWindow(messageID string) (before, after string, ok bool) {
	id, err := strconv.ParseUint(messageID, 10, 64)
	if err != nil || id == 0 {
		return "", "", false
	}
	return strconv.FormatUint(id+1, 10), strconv.FormatUint(id-1, 10), true
}

// authorFromFooter recovers the submitter's ID from the rendered embed
// footer ("Author ID: <id>"). Only used during hydration, when the
// rendered message is the sole surviving record.
func authorFromFooter(msg *discordgo.Message) string {
	if len(msg.Embeds) == 0 || msg.Embeds[0].Footer == nil {
		return ""
	}
	parts := strings.SplitN(msg.Embeds[0].Footer.Text, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func threadIDOf(msg *discordgo.Message) string {
	if msg.Thread != nil {
		return msg.Thread.ID
	}
	// A thread started from a message shares the message's ID.
	return msg.ID
}

func reactionCount(msg *discordgo.Message, emoji string) int {
	for _, reaction := range msg.Reactions {
		if reaction.Emoji != nil && normalizeEmoji(reaction.Emoji.Name) == emoji {
			return reaction.Count
		}
	}
	return 0
}

func flagFromContent(content string) model.FlagKind {
	if !strings.HasPrefix(content, "Flagged: ") {
		return model.FlagNone
	}
	keyword, _, _ := strings.Cut(strings.TrimPrefix(content, "Flagged: "), " |")
	if kind, ok := model.ParseFlag(keyword); ok {
		return kind
	}
	return model.FlagNone
}

// normalizeEmoji strips the emoji variation selector, which Discord
// reports inconsistently across reaction payloads.
func normalizeEmoji(name string) string {
	return strings.TrimSuffix(name, "️")
}
