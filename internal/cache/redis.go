package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/avialine/flight-booking/internal/config"
	"github.com/avialine/flight-booking/models"
	"github.com/redis/go-redis/v9"
)

// RedisCache is the Redis-backed implementation of [FlightCache].
type RedisCache struct {
	client *redis.Client
	cfg    config.Redis
}

// NewRedisCache constructs a [RedisCache] and verifies connectivity with a
// ping, so a misconfigured Redis address fails at startup rather than on the
// first request.
func NewRedisCache(ctx context.Context, cfg config.Redis) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, cfg: cfg}, nil
}

// GetFlights returns the cached flight list, or (nil, nil) on a cache miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]models.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []models.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// SetFlights stores the flight list under the configured TTL.
func (c *RedisCache) SetFlights(ctx context.Context, flights []models.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey, payload, c.cfg.FlightsTTL).Err()
}

// InvalidateFlights drops the cached flight list.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey).Err()
}

// Close releases the underlying Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

const flightsKey = "cache:flights"
