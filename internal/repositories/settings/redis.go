package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	settingsKeyPrefix = "settings:"
	settingsNamesKey  = "settings_names"
)

// ErrSettingsNotFound is returned when no preset is stored under a name
var ErrSettingsNotFound = errors.New("settings not found")

// Config holds configuration for the Redis settings repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed settings repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSettings persists a preset to Redis
func (r *redisRepository) SaveSettings(ctx context.Context, input *SaveSettingsInput) error {
	if input == nil || input.Name == "" || input.Settings == nil {
		return errors.New("input, settings name and settings cannot be empty")
	}

	settingsJSON, err := json.Marshal(input.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, settingsKeyPrefix+input.Name, settingsJSON, 0)
	pipe.SAdd(ctx, settingsNamesKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// GetSettings retrieves a preset by name from Redis
func (r *redisRepository) GetSettings(ctx context.Context, input *GetSettingsInput) (*models.Settings, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and settings name cannot be empty")
	}

	settingsJSON, err := r.client.Get(ctx, settingsKeyPrefix+input.Name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(settingsJSON), &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &settings, nil
}

// ListSettings returns every stored preset name
func (r *redisRepository) ListSettings(ctx context.Context, input *ListSettingsInput) (*ListSettingsOutput, error) {
	names, err := r.client.SMembers(ctx, settingsNamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	sort.Strings(names)

	return &ListSettingsOutput{
		Names: names,
	}, nil
}
