// Package chainable wires configuration, the Redis page cache and the query
// builder around a caller-supplied list transport.
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	logging.Setup(cfg.LoggerConfig())
//
//	c, err := chainable.Open(ctx, tr, cfg)
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	q, err := c.Query()
//	if err != nil {
//		return err
//	}
//	page, err := q.Last(10).Charges().List(ctx, nil)
package chainable

import (
	"context"
	"fmt"

	"github.com/Zertz/stripe-chainable/pkg/cache"
	"github.com/Zertz/stripe-chainable/pkg/chain"
	"github.com/Zertz/stripe-chainable/pkg/config"
	"github.com/Zertz/stripe-chainable/pkg/logging"
	"github.com/Zertz/stripe-chainable/pkg/transport"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client hands out query builders over one transport.
type Client struct {
	transport transport.Transport
	redis     *redis.Client
	config    config.Config
	logger    zerolog.Logger
}

// Open creates a client over tr. A nil cfg selects config.Default. When the
// cache is enabled Open connects to Redis and fails if it is unreachable.
func Open(ctx context.Context, tr transport.Transport, cfg *config.Config) (*Client, error) {
	if tr == nil {
		return nil, fmt.Errorf("transport is required")
	}

	if cfg == nil {
		var err error
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	} else if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Client{
		transport: tr,
		config:    *cfg,
		logger:    logging.NewLogger("chain"),
	}

	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Cache.Addr, err)
		}

		c.redis = redisClient
		c.transport = cache.NewTransport(tr, cache.NewManager(redisClient, cfg.Cache.Prefix), cache.Config{
			TTL:    cfg.Cache.TTL,
			Logger: logging.NewLogger("cache"),
		})

		c.logger.Info().
			Str("addr", cfg.Cache.Addr).
			Dur("ttl", cfg.Cache.TTL).
			Msg("Page cache enabled")
	}

	return c, nil
}

// Query returns a new query builder. Each builder holds a single chain; use
// one per concurrent query.
func (c *Client) Query() (*chain.Query, error) {
	cfg := chain.DefaultConfig()
	cfg.PageSize = c.config.Pagination.PageSize
	cfg.Logger = c.logger
	return chain.New(c.transport, cfg)
}

// Transport returns the transport queries run against, cache included.
func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Close releases the Redis connection, if any.
func (c *Client) Close() error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}
