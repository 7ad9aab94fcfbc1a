package cache

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/status-im/user-directory/interfaces"
)

// NoExpiration stores an entry until it is deleted
const NoExpiration = cache.NoExpiration

// GoCache stores query states in go-cache. Values are stored by value, so
// every Set replaces the previous snapshot as a whole.
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a new GoCache instance
// defaultExpiration: default expiration time for entries
// cleanupInterval: interval for cleaning up expired entries
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the state stored under key
func (gc *GoCache) Get(key string) (interfaces.QueryState, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return interfaces.QueryState{}, false
	}
	state, ok := value.(interfaces.QueryState)
	if !ok {
		return interfaces.QueryState{}, false
	}
	return state, true
}

// Set stores the state under its own key
// If ttl is 0, uses cache's default expiration
// If ttl is -1 (NoExpiration), the entry never expires
func (gc *GoCache) Set(state interfaces.QueryState, ttl time.Duration) {
	gc.cache.Set(state.Key, state, ttl)
}

// Delete removes entries by keys
func (gc *GoCache) Delete(keys []string) {
	for _, key := range keys {
		gc.cache.Delete(key)
	}
}

// Clear removes all entries
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of entries, possibly including expired ones
// not yet cleaned up
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}

// States returns all unexpired states
func (gc *GoCache) States() []interfaces.QueryState {
	items := gc.cache.Items()
	states := make([]interfaces.QueryState, 0, len(items))
	for _, item := range items {
		if state, ok := item.Object.(interfaces.QueryState); ok {
			states = append(states, state)
		}
	}
	return states
}

// OnEvicted registers fn to be called with the key of every entry removed
// by Delete or by expiry cleanup. Clear does not trigger it.
func (gc *GoCache) OnEvicted(fn func(key string)) {
	gc.cache.OnEvicted(func(key string, _ interface{}) {
		fn(key)
	})
}

// DeleteExpired manually triggers deletion of expired entries
func (gc *GoCache) DeleteExpired() {
	gc.cache.DeleteExpired()
}

// Update replaces an existing state keeping its current expiration.
// It returns false if the key is missing or already expired.
func (gc *GoCache) Update(state interfaces.QueryState) bool {
	_, expiration, found := gc.cache.GetWithExpiration(state.Key)
	if !found {
		return false
	}

	ttl := NoExpiration
	if !expiration.IsZero() {
		ttl = time.Until(expiration)
		if ttl <= 0 {
			return false
		}
	}

	gc.cache.Set(state.Key, state, ttl)
	return true
}
