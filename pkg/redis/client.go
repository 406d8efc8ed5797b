package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/config"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace  = "sl"
	sessionPrefix = "session"
	changesPrefix = "changes"
)

// Client wraps the redis connection helpers needed by the platform: session
// storage with idle-timeout TTLs and the per-collection change-feed channels.
type Client struct {
	raw *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "redis connection established")
	}
	return &Client{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// SessionKey builds the namespaced key for one signed-in session.
func (c *Client) SessionKey(sessionID string) string {
	return c.buildKey(sessionPrefix, sessionID)
}

// ChangeChannel builds the pub/sub channel name carrying change signals for a
// collection.
func (c *Client) ChangeChannel(collection string) string {
	return c.buildKey(changesPrefix, collection)
}

// StoreSession writes a session marker with the idle-timeout TTL.
func (c *Client) StoreSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	if c.raw == nil {
		return errors.New("redis client not initialized")
	}
	return c.raw.Set(ctx, c.SessionKey(sessionID), "1", ttl).Err()
}

// TouchSession extends the session TTL; returns false when the session has
// already expired (idle timeout) or was revoked.
func (c *Client) TouchSession(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	if c.raw == nil {
		return false, errors.New("redis client not initialized")
	}
	ok, err := c.raw.Expire(ctx, c.SessionKey(sessionID), ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// RevokeSession deletes the session marker.
func (c *Client) RevokeSession(ctx context.Context, sessionID string) error {
	if c.raw == nil {
		return errors.New("redis client not initialized")
	}
	return c.raw.Del(ctx, c.SessionKey(sessionID)).Err()
}

// PublishChange signals subscribers that a collection's contents changed. The
// payload is only the collection name; consumers re-read the full snapshot.
func (c *Client) PublishChange(ctx context.Context, collection string) error {
	if c.raw == nil {
		return errors.New("redis client not initialized")
	}
	return c.raw.Publish(ctx, c.ChangeChannel(collection), collection).Err()
}

// SubscribeChanges opens a pub/sub subscription for one collection's change
// channel. The caller owns the returned PubSub and must Close it.
func (c *Client) SubscribeChanges(ctx context.Context, collection string) (*redis.PubSub, error) {
	if c.raw == nil {
		return nil, errors.New("redis client not initialized")
	}
	sub := c.raw.Subscribe(ctx, c.ChangeChannel(collection))
	// Receive forces the SUBSCRIBE handshake so errors surface here, not on
	// the first message.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}
	return sub, nil
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.raw == nil {
		return errors.New("redis client not initialized")
	}
	return c.raw.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(parts ...string) string {
	if len(parts) == 0 {
		return keyNamespace
	}
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
