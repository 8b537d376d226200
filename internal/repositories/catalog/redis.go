package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	catalogKeyPrefix = "catalog:"
	catalogNamesKey  = "catalog_names"
)

// ErrCatalogNotFound is returned when no catalog is stored under a name
var ErrCatalogNotFound = errors.New("catalog not found")

// Config holds configuration for the Redis catalog repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// storedCatalog is the JSON document kept under each catalog key
type storedCatalog struct {
	Name       string              `json:"name"`
	Challenges []*models.Challenge `json:"challenges"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// NewRedis creates a new Redis-backed catalog repository
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

// SaveCatalog persists a catalog to Redis
func (r *redisRepository) SaveCatalog(ctx context.Context, input *SaveCatalogInput) error {
	if input == nil || input.Name == "" {
		return errors.New("input and catalog name cannot be empty")
	}

	challenges := input.Challenges
	if challenges == nil {
		challenges = []*models.Challenge{}
	}

	catalogJSON, err := json.Marshal(&storedCatalog{
		Name:       input.Name,
		Challenges: challenges,
		UpdatedAt:  input.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, catalogKeyPrefix+input.Name, catalogJSON, 0)
	pipe.SAdd(ctx, catalogNamesKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	return nil
}

// GetCatalog retrieves a catalog by name from Redis
func (r *redisRepository) GetCatalog(ctx context.Context, input *GetCatalogInput) (*GetCatalogOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and catalog name cannot be empty")
	}

	catalogJSON, err := r.client.Get(ctx, catalogKeyPrefix+input.Name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	var stored storedCatalog
	if err := json.Unmarshal([]byte(catalogJSON), &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	return &GetCatalogOutput{
		Name:       stored.Name,
		Challenges: stored.Challenges,
		UpdatedAt:  stored.UpdatedAt,
	}, nil
}

// ListCatalogs returns every stored catalog name
func (r *redisRepository) ListCatalogs(ctx context.Context, input *ListCatalogsInput) (*ListCatalogsOutput, error) {
	names, err := r.client.SMembers(ctx, catalogNamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}

	sort.Strings(names)

	return &ListCatalogsOutput{
		Names: names,
	}, nil
}

// DeleteCatalog removes a catalog and its index entry
func (r *redisRepository) DeleteCatalog(ctx context.Context, input *DeleteCatalogInput) error {
	if input == nil || input.Name == "" {
		return errors.New("input and catalog name cannot be empty")
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, catalogKeyPrefix+input.Name)
	pipe.SRem(ctx, catalogNamesKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete catalog: %w", err)
	}

	if del.Val() == 0 {
		return ErrCatalogNotFound
	}

	return nil
}
