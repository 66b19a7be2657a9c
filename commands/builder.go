package commands

import (
	"community-bot/model"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands builds the application command set registered on startup.
func GenerateCommands() []*discordgo.ApplicationCommand {
	manageGuild := int64(discordgo.PermissionManageServer)

	flagChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(model.FlagNames()))
	for _, name := range model.FlagNames() {
		flagChoices = append(flagChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}

	messageIDOption := func(name, description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: description,
			Required:    true,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "suggest",
			Description: "Community suggestions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "submit",
					Description: "Suggest something. Abuse may result in mod actions.",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "text",
							Description: "The suggestion text.",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionAttachment,
							Name:        "attachment",
							Description: "An optional image attachment.",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a suggestion you submitted.",
					Options: []*discordgo.ApplicationCommandOption{
						messageIDOption("message_id", "The suggestion's message ID."),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show the vote statistics of a suggestion.",
					Options: []*discordgo.ApplicationCommandOption{
						messageIDOption("message_id", "The suggestion's message ID."),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "resolved",
					Description: "Mark your suggestion as resolved.",
					Options: []*discordgo.ApplicationCommandOption{
						messageIDOption("thread_id", "The suggestion's discussion thread ID."),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "note",
					Description: "Add a remark to a suggestion (moderators only).",
					Options: []*discordgo.ApplicationCommandOption{
						messageIDOption("message_id", "The suggestion's message ID."),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "remark",
							Description: "The remark to attach.",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Strip notes and extra reactions from a suggestion (moderators only).",
					Options: []*discordgo.ApplicationCommandOption{
						messageIDOption("message_id", "The suggestion's message ID."),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "flag",
					Description: "Flag a suggestion (moderators only).",
					Options: []*discordgo.ApplicationCommandOption{
						messageIDOption("message_id", "The suggestion's message ID."),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "flag",
							Description: "The flag to apply.",
							Required:    true,
							Choices:     flagChoices,
						},
					},
				},
			},
		},
		{
			Name:                     "config",
			Description:              "Configure the bot for this server",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current server configuration.",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "suggestion-channel",
					Description: "Set the suggestion channel.",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "The channel suggestions are posted to.",
							Required:    true,
							ChannelTypes: []discordgo.ChannelType{
								discordgo.ChannelTypeGuildText,
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "mod-role",
					Description: "Set the moderator role.",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "The role treated as moderators.",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "opt",
					Description: "Toggle an opt-in feature.",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "feature",
							Description: "The feature to toggle.",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Whether the feature is enabled.",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "sql",
			Description: "Run a query against the local event store (owner only).",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "The SQL query to run.",
					Required:    true,
				},
			},
		},
		{
			Name:        "systeminfo",
			Description: "Show host and process diagnostics (owner only).",
		},
	}
}
