package bot

import (
	"community-bot/handlers/suggestion"
	"community-bot/model"
	"community-bot/utils/database"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
)

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	config             atomic.Value // *model.Config
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	CommandCooldowns   map[string]time.Time
	CooldownMutex      sync.Mutex
	DB                 *sqlx.DB
	Mongo              *mongo.Client
	GuildConfigs       *database.GuildConfigStore
	Engine             *suggestion.Engine
	scheduler          *Scheduler
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetDB() *sqlx.DB {
	return b.DB
}

func New(cfg *model.Config, db *sqlx.DB, mongoClient *mongo.Client, guildConfigs *database.GuildConfigStore) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent
	dg.StateEnabled = false

	b := &Bot{
		Session:          dg,
		CommandCooldowns: make(map[string]time.Time),
		DB:               db,
		Mongo:            mongoClient,
		GuildConfigs:     guildConfigs,
	}
	b.config.Store(cfg)

	registry := suggestion.NewRegistry(dg, guildConfigs)
	b.Engine = suggestion.NewEngine(dg, guildConfigs, registry, database.NewEventLog(db))

	b.scheduler = NewScheduler(b)
	return b, nil
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.scheduler.Stop()
	b.Session.Close()
}

// CheckCooldown enforces one invocation per user per command per minute.
// It returns false while the user is still cooling down, and arms the
// cooldown otherwise.
func (b *Bot) CheckCooldown(userID, command string) bool {
	b.CooldownMutex.Lock()
	defer b.CooldownMutex.Unlock()

	key := userID + ":" + command
	if t, ok := b.CommandCooldowns[key]; ok && time.Since(t) < time.Minute {
		return false
	}
	b.CommandCooldowns[key] = time.Now()
	return true
}

// CleanupCooldowns drops cooldown records past their window.
func (b *Bot) CleanupCooldowns() {
	b.CooldownMutex.Lock()
	defer b.CooldownMutex.Unlock()

	for id, t := range b.CommandCooldowns {
		if time.Since(t) > time.Minute {
			delete(b.CommandCooldowns, id)
		}
	}
}
