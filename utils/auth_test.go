package utils

import (
	"community-bot/model"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestHasModRole(t *testing.T) {
	cfg := &model.GuildConfig{GuildID: "g", ModRole: "role-mod"}

	assert.True(t, HasModRole(cfg, &discordgo.Member{Roles: []string{"role-a", "role-mod"}}))
	assert.False(t, HasModRole(cfg, &discordgo.Member{Roles: []string{"role-a"}}))
	assert.False(t, HasModRole(cfg, nil))
	assert.False(t, HasModRole(&model.GuildConfig{GuildID: "g"}, &discordgo.Member{Roles: []string{"role-mod"}}))
	assert.False(t, HasModRole(nil, &discordgo.Member{Roles: []string{"role-mod"}}))
}

func TestMemberIsModerator(t *testing.T) {
	withRole := &model.GuildConfig{GuildID: "g", ModRole: "role-mod"}
	withoutRole := &model.GuildConfig{GuildID: "g"}

	// A configured role takes precedence over native permissions.
	assert.True(t, MemberIsModerator(withRole, &discordgo.Member{Roles: []string{"role-mod"}}))
	assert.False(t, MemberIsModerator(withRole, &discordgo.Member{
		Permissions: discordgo.PermissionAdministrator | discordgo.PermissionManageMessages,
	}))

	assert.True(t, MemberIsModerator(withoutRole, &discordgo.Member{Permissions: discordgo.PermissionManageServer}))
	assert.True(t, MemberIsModerator(withoutRole, &discordgo.Member{Permissions: discordgo.PermissionManageMessages}))
	assert.False(t, MemberIsModerator(withoutRole, &discordgo.Member{Permissions: discordgo.PermissionSendMessages}))
	assert.False(t, MemberIsModerator(withoutRole, nil))
}

func TestCanManageMessages(t *testing.T) {
	assert.True(t, CanManageMessages(&discordgo.Member{Permissions: discordgo.PermissionManageMessages}))
	assert.False(t, CanManageMessages(&discordgo.Member{Permissions: discordgo.PermissionManageServer}))
	assert.False(t, CanManageMessages(nil))
}

func TestInteractionUser(t *testing.T) {
	guildUser := &discordgo.User{ID: "u1"}
	dmUser := &discordgo.User{ID: "u2"}

	fromGuild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: guildUser},
	}}
	fromDM := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: dmUser}}

	assert.Same(t, guildUser, InteractionUser(fromGuild))
	assert.Same(t, dmUser, InteractionUser(fromDM))
}
