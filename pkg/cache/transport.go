package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Zertz/stripe-chainable/pkg/transport"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is used when Config.TTL is not positive.
const DefaultTTL = 5 * time.Minute

// Store is the page storage used by Transport. *Manager implements it.
type Store interface {
	Get(ctx context.Context, key Key) (*Entry, error)
	Set(ctx context.Context, key Key, entry *Entry) error
}

// Config holds page cache configuration.
type Config struct {
	// TTL is how long a fetched page is served from cache.
	TTL time.Duration

	Logger zerolog.Logger
}

// Transport is a transport.Transport that serves pages from a Store and
// falls through to the wrapped transport on a miss.
type Transport struct {
	next   transport.Transport
	store  Store
	config Config
	group  singleflight.Group
}

// NewTransport wraps next with a page cache backed by store.
func NewTransport(next transport.Transport, store Store, config Config) *Transport {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	return &Transport{
		next:   next,
		store:  store,
		config: config,
	}
}

// List implements transport.Transport.
func (t *Transport) List(ctx context.Context, endpoint string, params *transport.ListParams, extras transport.Extras) (*transport.Page, error) {
	return t.fetch(ctx, NewKey(endpoint, params, extras), func(ctx context.Context) (*transport.Page, error) {
		return t.next.List(ctx, endpoint, params, extras)
	})
}

// ListTransactions implements transport.Transport.
func (t *Transport) ListTransactions(ctx context.Context, params *transport.ListParams, extras transport.Extras) (*transport.Page, error) {
	key := NewKey(transport.LedgerEndpoint, params, extras)
	return t.fetch(ctx, key, func(ctx context.Context) (*transport.Page, error) {
		return t.next.ListTransactions(ctx, params, extras)
	})
}

func (t *Transport) fetch(ctx context.Context, key Key, load func(context.Context) (*transport.Page, error)) (*transport.Page, error) {
	k := key.String()
	logger := t.config.Logger.With().Str("key", k).Logger()

	entry, err := t.store.Get(ctx, key)
	if err == nil {
		logger.Debug().Time("cached_at", entry.CachedAt).Msg("Cache hit")
		return entry.Page, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn().Err(err).Msg("Cache read failed")
	}

	v, err, shared := t.group.Do(k, func() (any, error) {
		page, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return page, nil
		}

		if err := t.store.Set(ctx, key, NewEntry(page, t.config.TTL)); err != nil {
			logger.Warn().Err(err).Msg("Cache write failed")
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Bool("shared", shared).Msg("Cache miss")
	return v.(*transport.Page), nil
}
