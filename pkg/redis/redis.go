package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/myhome/myhome-backend/config"
	"github.com/myhome/myhome-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// CachedCoordinate is a geocoding result stored in the cache
type CachedCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// CacheCoordinate stores a geocoding result for an address.
// No-op when Redis is not initialized.
func CacheCoordinate(ctx context.Context, address string, coord CachedCoordinate, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	data, err := json.Marshal(coord)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("geocode:%s", address)
	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("Failed to cache geocode result", err, map[string]interface{}{
			"address": address,
		})
		return err
	}

	logger.Debug("Geocode result cached", map[string]interface{}{
		"address": address,
		"ttl":     ttl.String(),
	})
	return nil
}

// GetCachedCoordinate looks up a cached geocoding result for an address.
// Returns nil without error on a cache miss or when Redis is not initialized.
func GetCachedCoordinate(ctx context.Context, address string) (*CachedCoordinate, error) {
	if client == nil {
		return nil, nil
	}

	key := fmt.Sprintf("geocode:%s", address)
	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to read geocode cache", err, map[string]interface{}{
			"address": address,
		})
		return nil, err
	}

	var coord CachedCoordinate
	if err := json.Unmarshal([]byte(val), &coord); err != nil {
		return nil, err
	}
	return &coord, nil
}
