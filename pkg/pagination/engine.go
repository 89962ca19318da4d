package pagination

import (
	"context"
	"time"

	"github.com/Zertz/stripe-chainable/pkg/transport"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 100

	// MaxPageSize is the largest page the list API serves.
	MaxPageSize = 100
)

// Config holds engine configuration.
type Config struct {
	// PageSize is the largest number of items requested per fetch. It is
	// also the threshold above which a limit spans several pages.
	PageSize int

	// Logger receives per-page and completion events.
	Logger zerolog.Logger
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		PageSize: DefaultPageSize,
		Logger:   log.With().Str("component", "pagination").Logger(),
	}
}

// ProgressFunc receives the cumulative item count and the transport's total
// count after every page.
type ProgressFunc func(fetched, total int)

// Request describes one list execution.
type Request struct {
	// Endpoint labels logs and metrics.
	Endpoint string

	// Params is the live request state. The engine advances its cursor and
	// remaining limit in place between pages.
	Params *transport.ListParams

	// Extras are sent unchanged with every page.
	Extras transport.Extras

	// RetrieveAll keeps fetching until the transport reports no more pages.
	RetrieveAll bool

	Fetch    transport.FetchFunc
	Progress ProgressFunc
}

// Engine runs list executions.
type Engine struct {
	config Config
}

// NewEngine creates a new engine. Out of range page sizes fall back to
// DefaultPageSize.
func NewEngine(config Config) *Engine {
	if config.PageSize <= 0 || config.PageSize > MaxPageSize {
		config.PageSize = DefaultPageSize
	}

	return &Engine{
		config: config,
	}
}

// PageSize returns the configured page size.
func (e *Engine) PageSize() int {
	return e.config.PageSize
}

// Run fetches pages until the stop policy is met and returns the last page's
// metadata with Data replaced by every item fetched. On failure it returns a
// *TransportError and no data.
func (e *Engine) Run(ctx context.Context, req Request) (*transport.Page, error) {
	start := time.Now()
	logger := e.config.Logger.With().
		Str("endpoint", req.Endpoint).
		Str("run_id", uuid.NewString()).
		Logger()

	params := req.Params
	if params == nil {
		params = &transport.ListParams{}
	}
	progress := req.Progress
	if progress == nil {
		progress = func(int, int) {}
	}

	items := make([]transport.Item, 0)
	var last *transport.Page

	for pageNum := 1; ; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, e.fail(logger, req.Endpoint, pageNum, len(items), err)
		}

		page, err := req.Fetch(ctx, e.pageParams(params), req.Extras)
		if err != nil {
			return nil, e.fail(logger, req.Endpoint, pageNum, len(items), err)
		}
		if page == nil {
			page = &transport.Page{}
		}

		items = append(items, page.Data...)
		last = page

		pagesFetchedTotal.WithLabelValues(req.Endpoint).Inc()
		itemsFetchedTotal.WithLabelValues(req.Endpoint).Add(float64(len(page.Data)))

		logger.Debug().
			Int("page", pageNum).
			Int("page_items", len(page.Data)).
			Int("fetched", len(items)).
			Int("total", page.TotalCount).
			Bool("has_more", page.HasMore).
			Msg("Page fetched")

		progress(len(items), page.TotalCount)

		if !e.shouldContinue(page, params, req.RetrieveAll) {
			break
		}

		cursor := items[len(items)-1].ID()
		if cursor == "" {
			return nil, e.fail(logger, req.Endpoint, pageNum+1, len(items), ErrMissingCursor)
		}
		params.StartingAfter = cursor

		if params.Limit > e.config.PageSize {
			params.Limit -= len(page.Data)
			if params.Limit <= 0 {
				break
			}
		}
	}

	duration := time.Since(start)
	listDuration.WithLabelValues(req.Endpoint).Observe(duration.Seconds())

	logger.Info().
		Int("items", len(items)).
		Int("total", last.TotalCount).
		Dur("duration", duration).
		Msg("List complete")

	return &transport.Page{
		Object:     last.Object,
		URL:        last.URL,
		HasMore:    last.HasMore,
		TotalCount: last.TotalCount,
		Data:       items,
	}, nil
}

// shouldContinue applies the stop policy to the page just fetched. An empty
// page never continues since it yields no cursor.
func (e *Engine) shouldContinue(page *transport.Page, params *transport.ListParams, retrieveAll bool) bool {
	if !page.HasMore || len(page.Data) == 0 {
		return false
	}
	return retrieveAll || params.Limit > e.config.PageSize
}

// pageParams returns the params for a single fetch, with the limit clamped to
// the page size.
func (e *Engine) pageParams(params *transport.ListParams) *transport.ListParams {
	p := params.Clone()
	if p.Limit > e.config.PageSize {
		p.Limit = e.config.PageSize
	}
	return p
}

func (e *Engine) fail(logger zerolog.Logger, endpoint string, pageNum, fetched int, err error) error {
	fetchErrorsTotal.WithLabelValues(endpoint).Inc()

	logger.Warn().
		Err(err).
		Int("page", pageNum).
		Int("fetched", fetched).
		Msg("Page fetch failed")

	return &TransportError{
		Endpoint: endpoint,
		Page:     pageNum,
		Err:      err,
	}
}
