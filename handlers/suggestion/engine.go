package suggestion

import (
	"community-bot/model"
	"community-bot/utils"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const maxRemarkLength = 250

// Recorder persists suggestion lifecycle actions to the local audit log.
// Recording is best-effort and never blocks an operation.
type Recorder interface {
	Record(action, guildID, messageID, actorID, detail string) error
}

// Engine drives the suggestion lifecycle: creation, deletion, flagging,
// annotation and resolution. It reaches Discord only through the narrow
// session port so it can be exercised with synthetic events.
type Engine struct {
	session  model.DiscordSession
	configs  model.GuildConfigProvider
	registry *Registry
	recorder Recorder
}

// NewEngine creates an engine. The recorder may be nil.
func NewEngine(session model.DiscordSession, configs model.GuildConfigProvider, registry *Registry, recorder Recorder) *Engine {
	return &Engine{
		session:  session,
		configs:  configs,
		registry: registry,
		recorder: recorder,
	}
}

// Registry exposes the entry table, mainly for event wiring.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Submit posts a new suggestion to the guild's configured channel: an
// attributed embed with the two vote reactions and a companion discussion
// thread named after the author. The author is notified over DM with a
// jump link, best-effort.
func (e *Engine) Submit(ctx context.Context, guildID string, author *discordgo.User, content, imageURL string) (*model.SuggestionEntry, error) {
	cfg, err := e.configs.GuildConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if cfg.SuggestionChannel == "" {
		return nil, ErrChannelNotConfigured
	}

	embed := &discordgo.MessageEmbed{
		Description: content,
		Color:       model.NeutralColor,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    author.Username,
			IconURL: author.AvatarURL(""),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Author ID: " + author.ID,
		},
	}
	if imageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}

	msg, err := e.session.ChannelMessageSendComplex(cfg.SuggestionChannel, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post suggestion: %w", err)
	}

	for _, emoji := range []string{model.UpvoteEmoji, model.DownvoteEmoji} {
		if err := e.session.MessageReactionAdd(cfg.SuggestionChannel, msg.ID, emoji); err != nil {
			return nil, fmt.Errorf("failed to add vote reactions: %w", err)
		}
	}

	thread, err := e.session.MessageThreadStartComplex(cfg.SuggestionChannel, msg.ID, &discordgo.ThreadStart{
		Name:                "Suggestion " + author.Username,
		AutoArchiveDuration: 1440,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create discussion thread: %w", err)
	}

	entry := &model.SuggestionEntry{
		MessageID: msg.ID,
		GuildID:   guildID,
		ChannelID: cfg.SuggestionChannel,
		AuthorID:  author.ID,
		ThreadID:  thread.ID,
		Flag:      model.FlagNone,
		Message:   msg,
	}
	e.registry.Put(entry)
	e.record("submit", guildID, msg.ID, author.ID, truncate(content, maxRemarkLength))

	notice := fmt.Sprintf(
		"%s your suggestion has been posted.\nTo delete it use `/suggest delete message_id:%s`\n> %s",
		author.Mention(), msg.ID, jumpURL(entry),
	)
	utils.SendPrivateMessage(e.session, author.ID, notice)

	return entry, nil
}

// Delete removes a suggestion. Only the original author, or a requester
// with message-management capability, may delete it.
func (e *Engine) Delete(ctx context.Context, guildID, messageID, requesterID string, canManageMessages bool) error {
	entry, err := e.registry.GetOrFetch(ctx, guildID, "", messageID)
	if err != nil {
		return err
	}
	if !canManageMessages && entry.AuthorID != requesterID {
		return ErrNotOwner
	}
	if err := e.session.ChannelMessageDelete(entry.ChannelID, entry.MessageID); err != nil {
		return fmt.Errorf("failed to delete suggestion message: %w", err)
	}
	e.registry.Invalidate(messageID)
	e.record("delete", guildID, messageID, requesterID, "")
	return nil
}

// Flag classifies a suggestion with one of the six flag keywords,
// recoloring and relabeling the rendered message and notifying the
// author. Re-flagging overwrites the previous state, last write wins.
func (e *Engine) Flag(ctx context.Context, guildID, messageID, keyword string, actor *discordgo.User) error {
	kind, ok := model.ParseFlag(keyword)
	if !ok {
		return ErrInvalidFlag
	}
	entry, err := e.registry.GetOrFetch(ctx, guildID, "", messageID)
	if err != nil {
		return err
	}
	embed := renderedEmbed(entry)
	if embed == nil {
		return ErrNotFound
	}

	style := model.FlagStyles[kind]
	embed.Color = style.Color
	content := fmt.Sprintf("Flagged: %s | %s", kind, style.Emoji)

	edited, err := e.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: entry.ChannelID,
		ID:      entry.MessageID,
		Content: &content,
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("failed to relabel suggestion: %w", err)
	}
	e.registry.setFlag(messageID, kind, edited)
	e.record("flag", guildID, messageID, actor.ID, string(kind))

	e.notifyAuthor(entry, actor, "")
	return nil
}

// Annotate appends a single remark field to the rendered message without
// touching the flag state. Remarks are truncated to 250 characters.
func (e *Engine) Annotate(ctx context.Context, guildID, messageID, remark string, actor *discordgo.User) error {
	entry, err := e.registry.GetOrFetch(ctx, guildID, "", messageID)
	if err != nil {
		return err
	}
	embed := renderedEmbed(entry)
	if embed == nil {
		return ErrNotFound
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Remark", Value: truncate(remark, maxRemarkLength)},
	}
	content := entry.Message.Content

	edited, err := e.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: entry.ChannelID,
		ID:      entry.MessageID,
		Content: &content,
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("failed to annotate suggestion: %w", err)
	}
	e.registry.UpdateSnapshot(edited)
	e.record("note", guildID, messageID, actor.ID, truncate(remark, maxRemarkLength))

	e.notifyAuthor(entry, actor, remark)
	return nil
}

// Clear strips extra fields, the flag label and all non-vote reactions,
// and resets the color to neutral. Vote counts and the tracked flag state
// are left untouched.
func (e *Engine) Clear(ctx context.Context, guildID, messageID string, actor *discordgo.User) error {
	entry, err := e.registry.GetOrFetch(ctx, guildID, "", messageID)
	if err != nil {
		return err
	}
	embed := renderedEmbed(entry)
	if embed == nil {
		return ErrNotFound
	}

	embed.Fields = nil
	embed.Color = model.NeutralColor
	content := ""

	edited, err := e.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: entry.ChannelID,
		ID:      entry.MessageID,
		Content: &content,
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("failed to clear suggestion: %w", err)
	}

	for _, reaction := range entry.Message.Reactions {
		if reaction.Emoji == nil {
			continue
		}
		name := normalizeEmoji(reaction.Emoji.Name)
		if name == model.UpvoteEmoji || name == model.DownvoteEmoji {
			continue
		}
		if err := e.session.MessageReactionsRemoveEmoji(entry.ChannelID, entry.MessageID, reaction.Emoji.APIName()); err != nil {
			log.Printf("Error removing reaction %s from suggestion %s: %v", reaction.Emoji.APIName(), entry.MessageID, err)
		}
	}

	e.registry.UpdateSnapshot(edited)
	e.record("clear", guildID, messageID, actor.ID, "")
	return nil
}

// Resolve archives and locks the suggestion's discussion thread. Only the
// original author may resolve. A thread started from a message shares the
// message's ID, so the thread ID doubles as the registry key.
func (e *Engine) Resolve(ctx context.Context, guildID, threadID, actorID string) error {
	entry, err := e.registry.GetOrFetch(ctx, guildID, "", threadID)
	if err != nil {
		return err
	}
	// An entry hydrated without a footer author cannot prove ownership.
	if entry.AuthorID == "" {
		return ErrNotFound
	}
	if entry.AuthorID != actorID {
		return ErrNotOwner
	}

	archived, locked := true, true
	if _, err := e.session.ChannelEditComplex(entry.ThreadID, &discordgo.ChannelEdit{
		Archived: &archived,
		Locked:   &locked,
	}); err != nil {
		return fmt.Errorf("failed to archive discussion thread: %w", err)
	}
	e.record("resolve", guildID, entry.MessageID, actorID, "")
	return nil
}

// Stats is a read-only projection of a suggestion's vote counters.
func (e *Engine) Stats(ctx context.Context, guildID, messageID string) (*model.SuggestionEntry, error) {
	return e.registry.GetOrFetch(ctx, guildID, "", messageID)
}

// notifyAuthor tells the suggestion's author about a moderation update
// over DM. Delivery failure is swallowed; it never fails the operation.
func (e *Engine) notifyAuthor(entry *model.SuggestionEntry, actor *discordgo.User, remark string) {
	if entry.AuthorID == "" {
		return
	}
	if remark = strings.TrimSpace(remark); remark == "" {
		remark = "No remark was given"
	}
	content := fmt.Sprintf(
		"<@%s> your suggestion of ID: %s has been updated.\nBy: %s (`%s`)\nRemark: %s\n> %s",
		entry.AuthorID, entry.MessageID, actor.Username, actor.ID, remark, jumpURL(entry),
	)
	utils.SendPrivateMessage(e.session, entry.AuthorID, content)
}

func (e *Engine) record(action, guildID, messageID, actorID, detail string) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(action, guildID, messageID, actorID, detail); err != nil {
		log.Printf("Error recording suggestion event %s/%s: %v", action, messageID, err)
	}
}

func renderedEmbed(entry *model.SuggestionEntry) *discordgo.MessageEmbed {
	if entry.Message == nil || len(entry.Message.Embeds) == 0 {
		return nil
	}
	// Copy so the cached snapshot is never mutated in place.
	embed := *entry.Message.Embeds[0]
	return &embed
}

func jumpURL(entry *model.SuggestionEntry) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", entry.GuildID, entry.ChannelID, entry.MessageID)
}

// truncate limits a string by character count, not bytes, so multibyte
// input is never cut mid-rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
