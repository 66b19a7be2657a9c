package utils

import (
	"community-bot/model"

	"github.com/bwmarrin/discordgo"
)

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// HasModRole reports whether the member holds the guild's configured
// moderator role.
func HasModRole(cfg *model.GuildConfig, member *discordgo.Member) bool {
	if cfg == nil || cfg.ModRole == "" || member == nil {
		return false
	}
	return contains(member.Roles, cfg.ModRole)
}

// MemberIsModerator resolves moderator capability for an interaction
// member, whose permission set is delivered with the interaction: the
// configured moderator role when one is set, otherwise native manage
// guild or manage messages permission.
func MemberIsModerator(cfg *model.GuildConfig, member *discordgo.Member) bool {
	if cfg != nil && cfg.ModRole != "" {
		return HasModRole(cfg, member)
	}
	if member == nil {
		return false
	}
	return member.Permissions&(discordgo.PermissionManageServer|discordgo.PermissionManageMessages) != 0
}

// IsModerator resolves moderator capability for a plain message event,
// where member permissions are not included in the payload and have to
// be resolved against the channel.
func IsModerator(s *discordgo.Session, cfg *model.GuildConfig, channelID string, member *discordgo.Member, userID string) bool {
	if cfg != nil && cfg.ModRole != "" {
		return HasModRole(cfg, member)
	}
	perms, err := s.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false
	}
	return perms&(discordgo.PermissionManageServer|discordgo.PermissionManageMessages) != 0
}

// CanManageMessages reports message-management capability for an
// interaction member.
func CanManageMessages(member *discordgo.Member) bool {
	return member != nil && member.Permissions&discordgo.PermissionManageMessages != 0
}

// InteractionUser returns the invoking user regardless of whether the
// interaction arrived from a guild or a DM.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
