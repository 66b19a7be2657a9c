package database

import (
	"community-bot/model"
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const guildConfigCollectionName = "guild_configs"

// GuildConfigStore reads and writes per-guild configuration documents,
// with a read-through cache in front of the collection. Writes go through
// $set upserts and invalidate the cached document.
type GuildConfigStore struct {
	collection *mongo.Collection

	mu    sync.RWMutex
	cache map[string]*model.GuildConfig
}

// NewGuildConfigStore creates a store over the guild_configs collection.
func NewGuildConfigStore(db *mongo.Database) *GuildConfigStore {
	return &GuildConfigStore{
		collection: db.Collection(guildConfigCollectionName),
		cache:      make(map[string]*model.GuildConfig),
	}
}

// GuildConfig returns the guild's configuration document. A guild with no
// stored document gets an empty config, not an error.
func (s *GuildConfigStore) GuildConfig(ctx context.Context, guildID string) (*model.GuildConfig, error) {
	s.mu.RLock()
	cached, ok := s.cache[guildID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var cfg model.GuildConfig
	err := s.collection.FindOne(ctx, bson.M{"_id": guildID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		cfg = model.GuildConfig{GuildID: guildID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load config for guild %s: %w", guildID, err)
	}

	s.mu.Lock()
	s.cache[guildID] = &cfg
	s.mu.Unlock()
	return &cfg, nil
}

// SetField upserts a single top-level field of the guild document.
func (s *GuildConfigStore) SetField(ctx context.Context, guildID, field string, value interface{}) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": guildID},
		bson.M{"$set": bson.M{field: value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to update %s for guild %s: %w", field, guildID, err)
	}
	s.invalidate(guildID)
	return nil
}

// SetFeature toggles an opt-in feature flag on the guild document.
func (s *GuildConfigStore) SetFeature(ctx context.Context, guildID, feature string, enabled bool) error {
	return s.SetField(ctx, guildID, "features."+feature, enabled)
}

func (s *GuildConfigStore) invalidate(guildID string) {
	s.mu.Lock()
	delete(s.cache, guildID)
	s.mu.Unlock()
}
