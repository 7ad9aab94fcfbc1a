package interfaces

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/query_state.go . IQueryStateReader,IQueryCache

// QueryStatus is the lifecycle status of a cache entry
type QueryStatus string

const (
	QueryStatusPending QueryStatus = "pending"
	QueryStatusSuccess QueryStatus = "success"
	QueryStatusError   QueryStatus = "error"
)

// FetchStatus tells whether a fetch for the entry is currently running
type FetchStatus string

const (
	FetchStatusIdle     FetchStatus = "idle"
	FetchStatusFetching FetchStatus = "fetching"
)

// QueryState is an immutable snapshot of one cache entry. Writers always
// replace the whole value, so a reader never sees a partially updated entry.
type QueryState struct {
	Key            string
	Data           any
	Err            error
	Status         QueryStatus
	FetchStatus    FetchStatus
	IsInvalidated  bool
	DataUpdatedAt  time.Time
	ErrorUpdatedAt time.Time
	FetchCount     int
}

// IsFresh reports whether the entry data may be used to answer reads
// without going to the data source.
func (s QueryState) IsFresh() bool {
	return s.Status == QueryStatusSuccess && !s.IsInvalidated && s.Data != nil
}

// QueryFunc loads the data for a single cache key
type QueryFunc func(ctx context.Context) (any, error)

// IQueryStateReader gives read access to cache entries
type IQueryStateReader interface {
	// GetQueryState returns the current state stored under key
	GetQueryState(key string) (QueryState, bool)
}

// IQueryCache is the read-through cache used by data services
type IQueryCache interface {
	IQueryStateReader

	// Fetch returns fresh cached data for key or runs fn and stores its result
	Fetch(ctx context.Context, key string, fn QueryFunc) (any, CacheStatus, error)

	// Invalidate marks the entry under key as invalidated
	Invalidate(key string) bool

	// InvalidatePrefix marks every entry whose key starts with prefix as invalidated
	InvalidatePrefix(prefix string) int

	// Refetch runs fn for key and stores its result while the current entry
	// keeps answering reads
	Refetch(ctx context.Context, key string, fn QueryFunc) (any, error)
}
