package suggestion

import (
	"community-bot/model"
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
)

// HandleModReply intercepts the moderator flag shorthand: a reply, sent
// by a moderator in the suggestion channel, whose content exactly matches
// a flag keyword (case-insensitively) and whose referent was posted by
// the bot. On a match the referenced suggestion is flagged and true is
// returned so the caller does not also treat the text as a submission.
func (e *Engine) HandleModReply(ctx context.Context, m *discordgo.MessageCreate, isModerator bool) bool {
	if !isModerator {
		return false
	}
	kind, ok := model.ParseFlag(m.Content)
	if !ok {
		return false
	}
	if m.MessageReference == nil {
		return false
	}

	ref := m.ReferencedMessage
	if ref == nil {
		fetched, err := e.session.ChannelMessage(m.ChannelID, m.MessageReference.MessageID)
		if err != nil {
			return false
		}
		ref = fetched
	}
	if ref.Author == nil || ref.Author.ID != e.registry.BotID() {
		return false
	}

	if err := e.Flag(ctx, m.GuildID, ref.ID, string(kind), m.Author); err != nil {
		log.Printf("Error applying moderator flag %s to suggestion %s: %v", kind, ref.ID, err)
	}
	return true
}
