package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/objstore/core/logger"
	"github.com/dmitrymomot/objstore/core/storage"
)

// Cache is the subset of redis.Cmdable used by CachedProvider.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const (
	defaultTTL    = 5 * time.Minute
	defaultPrefix = "objstore:credentials:"
)

// CachedProvider caches another provider's credentials in Redis.
// Cache failures are logged and fall through to the wrapped provider;
// "not configured" results are never cached.
type CachedProvider struct {
	next   storage.CredentialsProvider
	cache  Cache
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// CacheOption configures a CachedProvider.
type CacheOption func(*CachedProvider)

// WithTTL sets how long cached credentials stay valid.
func WithTTL(ttl time.Duration) CacheOption {
	return func(p *CachedProvider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the prefix of cache keys.
func WithKeyPrefix(prefix string) CacheOption {
	return func(p *CachedProvider) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// WithLogger sets the logger for cache failures.
func WithLogger(l *slog.Logger) CacheOption {
	return func(p *CachedProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewCachedProvider wraps next with a Redis cache.
func NewCachedProvider(cache Cache, next storage.CredentialsProvider, opts ...CacheOption) *CachedProvider {
	p := &CachedProvider{
		next:   next,
		cache:  cache,
		ttl:    defaultTTL,
		prefix: defaultPrefix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logger.Component("credentials_cache"))
	return p
}

// CacheOptions converts cfg into CacheOptions.
func (cfg Config) CacheOptions() []CacheOption {
	return []CacheOption{WithTTL(cfg.CredentialsTTL), WithKeyPrefix(cfg.KeyPrefix)}
}

func (p *CachedProvider) key(tenantID string) string {
	return p.prefix + tenantID
}

// GetS3Credentials implements storage.CredentialsProvider.
func (p *CachedProvider) GetS3Credentials(ctx context.Context, tenantID string) (*storage.Credentials, error) {
	key := p.key(tenantID)

	if c, err := p.lookup(ctx, key); err == nil {
		return c, nil
	} else if !errors.Is(err, redis.Nil) {
		p.logger.WarnContext(ctx, "credentials cache read failed",
			logger.Tenant(tenantID),
			logger.Error(err),
		)
	}

	c, err := p.next.GetS3Credentials(ctx, tenantID)
	if err != nil || c == nil {
		return c, err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}
	if err := p.cache.Set(ctx, key, data, p.ttl).Err(); err != nil {
		p.logger.WarnContext(ctx, "credentials cache write failed",
			logger.Tenant(tenantID),
			logger.Error(err),
		)
	}
	return c, nil
}

func (p *CachedProvider) lookup(ctx context.Context, key string) (*storage.Credentials, error) {
	data, err := p.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var c storage.Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Join(ErrCorruptCacheEntry, err)
	}
	return &c, nil
}

// Invalidate drops the cached credentials of tenantID, e.g. after key rotation.
func (p *CachedProvider) Invalidate(ctx context.Context, tenantID string) error {
	if err := p.cache.Del(ctx, p.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("invalidate credentials cache: %w", err)
	}
	return nil
}
