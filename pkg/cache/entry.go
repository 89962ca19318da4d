package cache

import (
	"time"

	"github.com/Zertz/stripe-chainable/pkg/transport"
)

// Entry is a cached list page.
type Entry struct {
	Page *transport.Page `json:"page"`

	// CachedAt is when the page was stored.
	CachedAt time.Time `json:"cached_at"`

	// Expires is when the entry becomes stale.
	Expires time.Time `json:"expires"`
}

// NewEntry wraps page in an entry that expires after ttl.
func NewEntry(page *transport.Page, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Page:     page,
		CachedAt: now,
		Expires:  now.Add(ttl),
	}
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
