package model

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Vote reaction emojis attached to every suggestion post.
const (
	UpvoteEmoji   = "⬆" // ⬆
	DownvoteEmoji = "⬇" // ⬇
)

// NeutralColor is the embed color of an unflagged suggestion.
const NeutralColor = 0xADD8E6

// FlagKind is a moderation classification applied to a suggestion.
type FlagKind string

const (
	FlagNone       FlagKind = ""
	FlagInvalid    FlagKind = "INVALID"
	FlagAbuse      FlagKind = "ABUSE"
	FlagIncomplete FlagKind = "INCOMPLETE"
	FlagDecline    FlagKind = "DECLINE"
	FlagApproved   FlagKind = "APPROVED"
	FlagDuplicate  FlagKind = "DUPLICATE"
)

// FlagStyle is the display glyph and embed color of a flag.
type FlagStyle struct {
	Emoji string
	Color int
}

// FlagStyles is shared between the explicit flag command and the
// moderator-reply shortcut; both accept exactly this vocabulary.
var FlagStyles = map[FlagKind]FlagStyle{
	FlagInvalid:    {Emoji: "⚠️", Color: 0xFFFFE0},
	FlagAbuse:      {Emoji: "‼️", Color: 0xFFA500},
	FlagIncomplete: {Emoji: "❔", Color: 0xFFFFFF},
	FlagDecline:    {Emoji: "❌", Color: 0xFF0000},
	FlagApproved:   {Emoji: "✅", Color: 0x90EE90},
	FlagDuplicate:  {Emoji: "❗", Color: 0xDDD6D5},
}

// ParseFlag matches a keyword against the flag vocabulary, case-insensitively.
func ParseFlag(keyword string) (FlagKind, bool) {
	kind := FlagKind(strings.ToUpper(strings.TrimSpace(keyword)))
	_, ok := FlagStyles[kind]
	return kind, ok
}

// FlagNames returns the vocabulary for user-facing error messages.
func FlagNames() []string {
	return []string{
		string(FlagInvalid), string(FlagAbuse), string(FlagIncomplete),
		string(FlagDecline), string(FlagApproved), string(FlagDuplicate),
	}
}

// SuggestionEntry is the tracked state of one posted suggestion, keyed by
// the rendered message ID. AuthorID is the single source of truth for
// ownership; the embed footer is a display projection only.
type SuggestionEntry struct {
	MessageID string
	GuildID   string
	ChannelID string
	AuthorID  string
	ThreadID  string
	Upvotes   int
	Downvotes int
	Flag      FlagKind

	// Message is the latest rendered snapshot, replaced whole on every
	// edit, never mutated in place.
	Message *discordgo.Message
}
