// Package cache keeps resolved identities in Redis so authenticated requests
// do not hit the credential store on every call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-service/internal/domain"
)

const keyPrefix = "identity:"

// IdentitySource is the authoritative identity lookup behind the cache.
type IdentitySource interface {
	LookupIdentity(ctx context.Context, id string) (*domain.Identity, error)
}

// IdentityCache is a read-through cache. Redis failures are logged and the
// lookup falls through to the source; misses in the source are never cached.
type IdentityCache struct {
	client *redis.Client
	source IdentitySource
	ttl    time.Duration
	logger *zap.Logger
}

// NewIdentityCache wraps source with a Redis-backed cache.
func NewIdentityCache(client *redis.Client, source IdentitySource, ttl time.Duration, logger *zap.Logger) *IdentityCache {
	return &IdentityCache{client: client, source: source, ttl: ttl, logger: logger}
}

// LookupIdentity returns the cached identity or loads and caches it.
func (c *IdentityCache) LookupIdentity(ctx context.Context, id string) (*domain.Identity, error) {
	key := keyPrefix + id

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var identity domain.Identity
		if jsonErr := json.Unmarshal(raw, &identity); jsonErr == nil {
			return &identity, nil
		}
		c.logger.Warn("discarding corrupt cached identity", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("identity cache read failed", zap.String("key", key), zap.Error(err))
	}

	identity, err := c.source.LookupIdentity(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(identity)
	if err == nil {
		err = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.Warn("identity cache write failed", zap.String("key", key), zap.Error(err))
	}
	return identity, nil
}
