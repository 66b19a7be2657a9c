package model

// Config holds the application configuration loaded from the environment.
type Config struct {
	BotToken         string
	AppID            string
	MongoURI         string
	MongoDatabase    string
	SQLitePath       string
	LogWebhookURL    string
	SentryDSN        string
	DeveloperUserIDs []string
}

// IsDeveloper reports whether the user is one of the configured owner IDs.
func (c *Config) IsDeveloper(userID string) bool {
	for _, id := range c.DeveloperUserIDs {
		if id != "" && id == userID {
			return true
		}
	}
	return false
}

// GuildConfig is the per-guild configuration document stored in MongoDB,
// keyed by guild ID.
type GuildConfig struct {
	GuildID           string          `bson:"_id"`
	SuggestionChannel string          `bson:"suggestion_channel,omitempty"`
	ModRole           string          `bson:"mod_role,omitempty"`
	Features          map[string]bool `bson:"features,omitempty"`
}

// FeatureEnabled reports whether an opt-in feature toggle is set.
func (g *GuildConfig) FeatureEnabled(name string) bool {
	if g == nil || g.Features == nil {
		return false
	}
	return g.Features[name]
}
