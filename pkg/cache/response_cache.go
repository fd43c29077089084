package cache

import (
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL bounds how long a cached command response may be served.
const DefaultTTL = 30 * time.Second

// listProductsRe matches the bare list-products command shape, the only
// shape eligible for cache storage.
var listProductsRe = regexp.MustCompile(`^(show|list|get)\s+(all\s+)?products?\s*$`)

// ResponseCache memoizes command responses for a short window, keyed on
// the normalized (trimmed, lower-cased) command text. Entries expire
// lazily at read time; there is no background janitor. Mutations clear
// product-related keys via Invalidate.
type ResponseCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewResponseCache builds an isolated cache instance. Pass 0 for the
// default 30 second TTL.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	// Cleanup interval 0 disables the janitor: expired entries are
	// dropped on read, as the pipeline expects.
	return &ResponseCache{
		store: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

// NormalizeKey produces the cache key for a raw command.
func NormalizeKey(command string) string {
	return strings.ToLower(strings.TrimSpace(command))
}

// Cacheable reports whether a command's response may be stored. Only the
// bare list-products shape is cache-safe; mutation results never are.
func Cacheable(normalizedCommand string) bool {
	return listProductsRe.MatchString(normalizedCommand)
}

// Get returns the cached response for key, or (nil, false) on miss or
// expiry.
func (c *ResponseCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores a response under key with the cache TTL.
func (c *ResponseCache) Set(key string, response interface{}) {
	c.store.Set(key, response, gocache.DefaultExpiration)
}

// Invalidate removes every key that textually references products.
// Deliberately over-inclusive: clearing an unrelated product query is
// cheaper than serving stale data after a mutation. Returns the removed
// keys so callers can log them against the triggering reason.
func (c *ResponseCache) Invalidate() []string {
	var removed []string
	for key := range c.store.Items() {
		if strings.Contains(key, "product") ||
			strings.Contains(key, "show all") ||
			strings.Contains(key, "list all") ||
			strings.Contains(key, "get all") ||
			listProductsRe.MatchString(key) {
			c.store.Delete(key)
			removed = append(removed, key)
		}
	}
	return removed
}
