package guildconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/lamdn/attendbot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	configKeyPrefix = "guild_config:"
	configGuildsKey = "guild_config_guilds"
)

// Config holds configuration for the Redis guild-config repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed guild-config repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Save durably stores a guild's settings
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) error {
	if input == nil || input.Config == nil {
		return errors.New("input and config cannot be nil")
	}

	if input.Config.GuildID == "" {
		return errors.New("guild ID cannot be empty")
	}

	configJSON, err := json.Marshal(input.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal guild config: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, configKeyPrefix+input.Config.GuildID, configJSON, 0)
	pipe.SAdd(ctx, configGuildsKey, input.Config.GuildID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save guild config: %w", err)
	}

	return nil
}

// Get retrieves a guild's settings
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	configJSON, err := r.client.Get(ctx, configKeyPrefix+input.GuildID).Result()
	if err != nil {
		if err == redis.Nil {
			// First run for this guild; start from defaults
			return &GetOutput{Config: &models.GuildConfig{GuildID: input.GuildID}}, nil
		}
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	var config models.GuildConfig
	if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
		// Malformed settings fall back to defaults rather than taking
		// the guild down
		return &GetOutput{Config: &models.GuildConfig{GuildID: input.GuildID}}, nil
	}

	return &GetOutput{Config: &config}, nil
}

// ListGuilds returns the guilds with stored settings
func (r *redisRepository) ListGuilds(ctx context.Context) (*ListGuildsOutput, error) {
	guildIDs, err := r.client.SMembers(ctx, configGuildsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list configured guilds: %w", err)
	}

	sort.Strings(guildIDs)
	return &ListGuildsOutput{GuildIDs: guildIDs}, nil
}
