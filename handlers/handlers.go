package handlers

import (
	"community-bot/bot"
	"community-bot/handlers/suggestion"
	"community-bot/model"
	"community-bot/utils"
	"context"
	"errors"
	"log"
	"path"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.Engine.Registry().SetBotUser(r.User.ID)
		log.Printf("Logged in as: %v#%v", r.User.Username, r.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		defer recoverPanic("interaction handler")
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		defer recoverPanic("message handler")
		handleSuggestionMessage(b, s, m)
	})
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		b.Engine.Registry().ApplyVoteDelta(r.MessageID, r.Emoji.Name, r.UserID, 1)
	})
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
		b.Engine.Registry().ApplyVoteDelta(r.MessageID, r.Emoji.Name, r.UserID, -1)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageDelete) {
		b.Engine.Registry().Invalidate(m.ID)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageUpdate) {
		if m.Message != nil {
			b.Engine.Registry().UpdateSnapshot(m.Message)
		}
	})
}

// handleSuggestionMessage treats a plain message in the configured
// suggestion channel as a submission, after giving the moderator
// flag-reply shorthand a chance to claim it.
func handleSuggestionMessage(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx := context.Background()
	cfg, err := b.GuildConfigs.GuildConfig(ctx, m.GuildID)
	if err != nil {
		utils.CaptureError(err, "guild config lookup")
		return
	}
	if cfg.SuggestionChannel == "" || m.ChannelID != cfg.SuggestionChannel {
		return
	}

	isMod := utils.IsModerator(s, cfg, m.ChannelID, m.Member, m.Author.ID)
	if b.Engine.HandleModReply(ctx, m, isMod) {
		return
	}

	if strings.TrimSpace(m.Content) == "" && len(m.Attachments) == 0 {
		return
	}

	if !b.CheckCooldown(m.Author.ID, "suggest submit") {
		if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
			log.Printf("Error deleting rate-limited message %s: %v", m.ID, err)
		}
		utils.SendPrivateMessage(s, m.Author.ID, "You are submitting suggestions too quickly. Try again in a minute.")
		return
	}

	if _, err := b.Engine.Submit(ctx, m.GuildID, m.Author, m.Content, imageAttachmentURL(m.Attachments)); err != nil {
		if _, sendErr := s.ChannelMessageSend(m.ChannelID, m.Author.Mention()+" "+userFacingError(err)); sendErr != nil {
			log.Printf("Error replying in suggestion channel: %v", sendErr)
		}
		return
	}

	// The rendered embed replaces the raw message.
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("Error deleting submission trigger message %s: %v", m.ID, err)
	}
}

var imageExtensions = map[string]bool{
	".png": true, ".jpeg": true, ".jpg": true, ".gif": true, ".webp": true,
}

func imageAttachmentURL(attachments []*discordgo.MessageAttachment) string {
	if len(attachments) == 0 {
		return ""
	}
	url := attachments[0].URL
	if imageExtensions[strings.ToLower(path.Ext(strings.SplitN(url, "?", 2)[0]))] {
		return url
	}
	return ""
}

// userFacingError maps lifecycle errors to plain, actionable responses.
// No error in this subsystem is fatal to the process.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, suggestion.ErrChannelNotConfigured):
		return "No suggestion channel is set up. Ask an admin to run `/config suggestion-channel`."
	case errors.Is(err, suggestion.ErrNotFound):
		return "Can not find that suggestion. It was probably deleted, or the ID is invalid."
	case errors.Is(err, suggestion.ErrNotOwner):
		return "You don't own that suggestion."
	case errors.Is(err, suggestion.ErrInvalidFlag):
		return "Invalid flag. Valid flags: " + strings.Join(model.FlagNames(), ", ")
	default:
		utils.CaptureError(err, "suggestion lifecycle")
		return "Something went wrong handling that suggestion."
	}
}

func recoverPanic(where string) {
	if r := recover(); r != nil {
		log.Printf("Recovered panic in %s: %v", where, r)
		sentry.CurrentHub().Recover(r)
	}
}
