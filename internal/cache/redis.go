package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps search results keyed by the normalized filter. Entries are
// scoped to a catalog generation; bumping it orphans every cached page at once.
type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

// GetSearch also returns the generation the lookup ran under; a miss must be
// stored back with SetSearch under that same generation.
func (c *RedisCache) GetSearch(ctx context.Context, filter domain.SearchFilter) ([]domain.TravelOption, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}
	data, err := c.client.Get(ctx, searchKey(gen, filter)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, nil
		}
		return nil, gen, err
	}

	var options []domain.TravelOption
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, gen, err
	}
	return options, gen, nil
}

// SetSearch stores results read while gen was current. If the catalog moved
// on in the meantime the entry lands under a dead generation and is never read.
func (c *RedisCache) SetSearch(ctx context.Context, gen int64, filter domain.SearchFilter, options []domain.TravelOption) error {
	payload, err := json.Marshal(options)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(gen, filter), payload, c.searchTTL).Err()
}

// InvalidateCatalog is called whenever seat counts or the catalog change.
func (c *RedisCache) InvalidateCatalog(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey()).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func generationKey() string {
	return "cache:travel:generation"
}

func searchKey(gen int64, filter domain.SearchFilter) string {
	// The same calendar day starts at a different instant in every zone.
	date := ""
	if filter.DepartureDate != nil {
		date = filter.DepartureDate.UTC().Format(time.RFC3339)
	}
	raw := strings.Join([]string{
		string(filter.Type),
		strings.ToLower(strings.TrimSpace(filter.Source)),
		strings.ToLower(strings.TrimSpace(filter.Destination)),
		date,
		fmt.Sprint(filter.OnlyAvailable),
		fmt.Sprint(filter.Limit),
		fmt.Sprint(filter.Offset),
	}, "|")
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("cache:travel:search:%d:%s", gen, hex.EncodeToString(sum[:]))
}
