package admin

import (
	"community-bot/bot"
	"community-bot/utils"
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HandleConfig serves the /config command group: show, suggestion-channel,
// mod-role, opt. Registered with Manage Server as the default permission.
func HandleConfig(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if i.GuildID == "" {
		utils.SendErrorResponse(s, i, "This command can only be used in a server.")
		return
	}
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	ctx := context.Background()

	switch sub.Name {
	case "show":
		cfg, err := b.GuildConfigs.GuildConfig(ctx, i.GuildID)
		if err != nil {
			utils.CaptureError(err, "guild config lookup")
			utils.SendErrorResponse(s, i, "Something went wrong reading the server configuration.")
			return
		}

		channel := "None"
		if cfg.SuggestionChannel != "" {
			channel = fmt.Sprintf("<#%s> (%s)", cfg.SuggestionChannel, cfg.SuggestionChannel)
		}
		role := "None"
		if cfg.ModRole != "" {
			role = fmt.Sprintf("<@&%s> (%s)", cfg.ModRole, cfg.ModRole)
		}
		var features []string
		for name, enabled := range cfg.Features {
			if enabled {
				features = append(features, name)
			}
		}
		enabledFeatures := "None"
		if len(features) > 0 {
			enabledFeatures = strings.Join(features, ", ")
		}

		utils.SendSimpleResponse(s, i, fmt.Sprintf(
			"Configuration of this server\n\n"+
				"`SuggestionChannel:` **%s**\n"+
				"`ModRole          :` **%s**\n"+
				"`Features         :` **%s**\n",
			channel, role, enabledFeatures,
		))

	case "suggestion-channel":
		channel := sub.Options[0].ChannelValue(s)
		if err := b.GuildConfigs.SetField(ctx, i.GuildID, "suggestion_channel", channel.ID); err != nil {
			utils.CaptureError(err, "set suggestion channel")
			utils.SendErrorResponse(s, i, "Failed to update the suggestion channel.")
			return
		}
		utils.SendSimpleResponse(s, i, fmt.Sprintf("Suggestion channel set to <#%s>", channel.ID))

	case "mod-role":
		role := sub.Options[0].RoleValue(s, i.GuildID)
		if err := b.GuildConfigs.SetField(ctx, i.GuildID, "mod_role", role.ID); err != nil {
			utils.CaptureError(err, "set mod role")
			utils.SendErrorResponse(s, i, "Failed to update the moderator role.")
			return
		}
		utils.SendSimpleResponse(s, i, fmt.Sprintf("Moderator role set to <@&%s>", role.ID))

	case "opt":
		feature := sub.Options[0].StringValue()
		enabled := sub.Options[1].BoolValue()
		if err := b.GuildConfigs.SetFeature(ctx, i.GuildID, feature, enabled); err != nil {
			utils.CaptureError(err, "set feature toggle")
			utils.SendErrorResponse(s, i, "Failed to update the feature toggle.")
			return
		}
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		utils.SendSimpleResponse(s, i, fmt.Sprintf("Feature `%s` %s in this server", feature, state))
	}
}
