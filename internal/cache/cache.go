// Package cache stores rendered schedule images: a small in-process layer
// in front of an optional shared Redis. A cache failure is never worth
// failing a reply over — both layers log and report a miss instead.
package cache

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "outage-image:"

const localCapacity = 64

// Images is the two-layer rendered-image cache.
type Images struct {
	local  *otter.Cache[string, []byte]
	client *redis.Client // nil when no REDIS_URL is configured
	ttl    time.Duration
}

// NewImages builds the cache. redisURL may be empty, leaving only the
// in-process layer.
func NewImages(redisURL string, ttl time.Duration) (*Images, error) {
	local := otter.Must(&otter.Options[string, []byte]{
		MaximumSize:      localCapacity,
		ExpiryCalculator: otter.ExpiryWriting[string, []byte](ttl),
	})

	c := &Images{local: local, ttl: ttl}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		c.client = client
	}
	return c, nil
}

// Close releases the Redis connection if one is open.
func (c *Images) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns a cached image by content hash.
func (c *Images) Get(ctx context.Context, hash string) ([]byte, bool) {
	if data, ok := c.local.GetIfPresent(keyPrefix + hash); ok {
		return data, true
	}
	if c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, keyPrefix+hash).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] redis read failed: %v", err)
		}
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		log.Printf("[cache] corrupt cached image %s: %v", hash, err)
		return nil, false
	}
	c.local.Set(keyPrefix+hash, data)
	return data, true
}

// Set stores an image in both layers.
func (c *Images) Set(ctx context.Context, hash string, data []byte) {
	c.local.Set(keyPrefix+hash, data)
	if c.client == nil {
		return
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	if err := c.client.Set(ctx, keyPrefix+hash, encoded, c.ttl).Err(); err != nil {
		log.Printf("[cache] redis write failed: %v", err)
	}
}

// Reset drops the in-process layer. Tests use this to make cache state
// deterministic.
func (c *Images) Reset() {
	c.local.InvalidateAll()
}
