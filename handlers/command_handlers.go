package handlers

import (
	"community-bot/bot"
	"community-bot/handlers/admin"
	"community-bot/utils"
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"suggest": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			handleSuggest(b, s, i)
		},
		"config": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			admin.HandleConfig(s, i, b)
		},
		"sql": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			admin.HandleSQL(s, i, b)
		},
		"systeminfo": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			SystemInfoHandler(s, i, b)
		},
	}
}

func handleSuggest(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		utils.SendErrorResponse(s, i, "This command can only be used in a server.")
		return
	}
	user := i.Member.User
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	if !b.CheckCooldown(user.ID, "suggest "+sub.Name) {
		utils.SendErrorResponse(s, i, "You are using this command too quickly. Try again in a minute.")
		return
	}

	ctx := context.Background()

	switch sub.Name {
	case "submit":
		var text, attachmentID string
		for _, opt := range sub.Options {
			switch opt.Name {
			case "text":
				text = opt.StringValue()
			case "attachment":
				attachmentID, _ = opt.Value.(string)
			}
		}
		var imageURL string
		if attachmentID != "" && data.Resolved != nil {
			if attachment, ok := data.Resolved.Attachments[attachmentID]; ok {
				imageURL = imageAttachmentURL([]*discordgo.MessageAttachment{attachment})
			}
		}
		entry, err := b.Engine.Submit(ctx, i.GuildID, user, text, imageURL)
		if err != nil {
			utils.SendErrorResponse(s, i, userFacingError(err))
			return
		}
		utils.SendSimpleResponse(s, i, fmt.Sprintf(
			"Your suggestion has been posted.\n> https://discord.com/channels/%s/%s/%s",
			entry.GuildID, entry.ChannelID, entry.MessageID,
		))

	case "delete":
		messageID := sub.Options[0].StringValue()
		err := b.Engine.Delete(ctx, i.GuildID, messageID, user.ID, utils.CanManageMessages(i.Member))
		if err != nil {
			utils.SendErrorResponse(s, i, userFacingError(err))
			return
		}
		utils.SendSimpleResponse(s, i, "Done")

	case "stats":
		messageID := sub.Options[0].StringValue()
		entry, err := b.Engine.Stats(ctx, i.GuildID, messageID)
		if err != nil {
			utils.SendErrorResponse(s, i, userFacingError(err))
			return
		}
		table := utils.RenderTable(
			[]string{"Upvote", "Downvote"},
			[][]string{{strconv.Itoa(entry.Upvotes), strconv.Itoa(entry.Downvotes)}},
		)
		embed := &discordgo.MessageEmbed{
			Title:       "Suggestion Statistics of message ID: " + messageID,
			Description: "```\n" + table + "\n```",
		}
		if entry.Message != nil && entry.Message.Content != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Flagged",
				Value: entry.Message.Content,
			})
		}
		utils.SendEmbedResponse(s, i, embed)

	case "resolved":
		threadID := sub.Options[0].StringValue()
		if err := b.Engine.Resolve(ctx, i.GuildID, threadID, user.ID); err != nil {
			utils.SendErrorResponse(s, i, userFacingError(err))
			return
		}
		utils.SendSimpleResponse(s, i, "Done")

	case "note", "clear", "flag":
		cfg, err := b.GuildConfigs.GuildConfig(ctx, i.GuildID)
		if err != nil {
			utils.CaptureError(err, "guild config lookup")
			utils.SendErrorResponse(s, i, "Something went wrong reading the server configuration.")
			return
		}
		if !utils.MemberIsModerator(cfg, i.Member) {
			utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
			return
		}

		messageID := sub.Options[0].StringValue()
		switch sub.Name {
		case "note":
			err = b.Engine.Annotate(ctx, i.GuildID, messageID, sub.Options[1].StringValue(), user)
		case "clear":
			err = b.Engine.Clear(ctx, i.GuildID, messageID, user)
		case "flag":
			err = b.Engine.Flag(ctx, i.GuildID, messageID, sub.Options[1].StringValue(), user)
		}
		if err != nil {
			utils.SendErrorResponse(s, i, userFacingError(err))
			return
		}
		utils.SendSimpleResponse(s, i, "Done")
	}
}
