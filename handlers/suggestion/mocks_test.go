package suggestion

import (
	"community-bot/model"
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// mockSession implements model.DiscordSession for engine and registry
// tests, so the lifecycle can be driven by synthetic events.
type mockSession struct {
	mock.Mock
}

func (m *mockSession) ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, messageID)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	args := m.Called(channelID, limit, beforeID, afterID, aroundID)
	if msgs, ok := args.Get(0).([]*discordgo.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, data)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSession) ChannelMessageEditComplex(edit *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(edit)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

func (m *mockSession) ChannelEditComplex(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(channelID, data)
	if ch, ok := args.Get(0).(*discordgo.Channel); ok {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSession) MessageThreadStartComplex(channelID, messageID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(channelID, messageID, data)
	if ch, ok := args.Get(0).(*discordgo.Channel); ok {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSession) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID, emojiID)
	return args.Error(0)
}

func (m *mockSession) MessageReactionsRemoveEmoji(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID, emojiID)
	return args.Error(0)
}

func (m *mockSession) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(recipientID)
	if ch, ok := args.Get(0).(*discordgo.Channel); ok {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

// stubConfigs serves one guild configuration without a database.
type stubConfigs struct {
	cfg *model.GuildConfig
	err error
}

func (s stubConfigs) GuildConfig(ctx context.Context, guildID string) (*model.GuildConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

// stubRecorder collects audit actions in memory.
type stubRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (r *stubRecorder) Record(action, guildID, messageID, actorID, detail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	return nil
}

func (r *stubRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.actions...)
}

const (
	testGuildID   = "guild-1"
	testChannelID = "123456789"
	testBotID     = "bot-user"
)

func newTestEngine(cfg *model.GuildConfig) (*Engine, *mockSession, *stubRecorder) {
	session := new(mockSession)
	configs := stubConfigs{cfg: cfg}
	registry := NewRegistry(session, configs)
	registry.SetBotUser(testBotID)
	recorder := &stubRecorder{}
	return NewEngine(session, configs, registry, recorder), session, recorder
}

func guildConfig() *model.GuildConfig {
	return &model.GuildConfig{
		GuildID:           testGuildID,
		SuggestionChannel: testChannelID,
	}
}

// botMessage builds a rendered suggestion post the way Submit does.
func botMessage(id, authorID string) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		ChannelID: testChannelID,
		GuildID:   testGuildID,
		Author:    &discordgo.User{ID: testBotID},
		Embeds: []*discordgo.MessageEmbed{
			{
				Description: "Add dark mode",
				Color:       model.NeutralColor,
				Footer:      &discordgo.MessageEmbedFooter{Text: "Author ID: " + authorID},
			},
		},
	}
}

func cachedEntry(e *Engine, id, authorID string) *model.SuggestionEntry {
	entry := &model.SuggestionEntry{
		MessageID: id,
		GuildID:   testGuildID,
		ChannelID: testChannelID,
		AuthorID:  authorID,
		ThreadID:  id,
		Flag:      model.FlagNone,
		Message:   botMessage(id, authorID),
	}
	e.Registry().Put(entry)
	return entry
}

func expectDM(session *mockSession, userID string) {
	session.On("UserChannelCreate", userID).Return(&discordgo.Channel{ID: "dm-" + userID}, nil)
	session.On("ChannelMessageSend", "dm-"+userID, mock.AnythingOfType("string")).Return(&discordgo.Message{}, nil)
}
