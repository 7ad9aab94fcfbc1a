package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/status-im/user-directory/events"
	"github.com/status-im/user-directory/interfaces"
	"github.com/status-im/user-directory/metrics"
	"github.com/status-im/user-directory/scheduler"
)

// Invalidation reasons reported to metrics
const (
	reasonManual  = "manual"
	reasonExpired = "expired"
)

// Service is an in-process query cache. Each key holds one QueryState which
// moves through pending → success | error and can be invalidated manually
// or once it is older than StaleTime.
//
// Readers go straight to the storage and always get a whole snapshot.
// Writers are serialized by mu so read-modify-write updates of a state
// never interleave.
type Service struct {
	goCache             *GoCache
	config              Config
	mu                  sync.Mutex
	group               singleflight.Group
	subscriptionManager *events.SubscriptionManager
	metricsWriter       *metrics.MetricsWriter
	expiryScheduler     *scheduler.Scheduler
	now                 func() time.Time
}

// NewService creates a new cache service with the given configuration
func NewService(config Config) *Service {
	s := &Service{
		goCache:             NewGoCache(config.entryTTL(), config.CleanupInterval),
		config:              config,
		subscriptionManager: events.NewSubscriptionManager(),
		metricsWriter:       metrics.NewMetricsWriter(metrics.ServiceCache),
		now:                 time.Now,
	}

	s.goCache.OnEvicted(func(key string) {
		s.emit(events.Event{Key: key, Type: events.EventRemoved})
	})

	if config.ExpiryCheckInterval > 0 {
		s.expiryScheduler = scheduler.New("cache-expiry", config.ExpiryCheckInterval, func(ctx context.Context) error {
			s.sweep()
			return nil
		})
	}

	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid cache config: %w", err)
	}
	if s.expiryScheduler != nil {
		s.expiryScheduler.Start(ctx, false)
	}

	logrus.WithFields(logrus.Fields{
		"service":    s.metricsWriter.GetServiceName(),
		"stale_time": s.config.StaleTime,
		"cache_time": s.config.CacheTime,
	}).Info("Cache service started")
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.expiryScheduler != nil {
		s.expiryScheduler.Stop()
	}
	s.Clear()
}

// GetQueryState returns the state stored under key. A successful entry that
// outlived StaleTime is marked invalidated before it is returned.
func (s *Service) GetQueryState(key string) (interfaces.QueryState, bool) {
	state, ok := s.goCache.Get(key)
	if !ok {
		return interfaces.QueryState{}, false
	}
	if !s.isStale(state) {
		return state, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok = s.goCache.Get(key)
	if !ok {
		return interfaces.QueryState{}, false
	}
	if s.isStale(state) {
		if s.markInvalidatedLocked(state) {
			s.metricsWriter.RecordInvalidations(reasonExpired, 1)
		}
		state.IsInvalidated = true
	}
	return state, true
}

// GetQueryData returns the data of a fresh entry
func (s *Service) GetQueryData(key string) (any, bool) {
	state, ok := s.GetQueryState(key)
	if !ok || !state.IsFresh() {
		return nil, false
	}
	return state.Data, true
}

// Fetch returns the data under key if the entry is fresh. Otherwise it runs
// fn and stores the result. Concurrent fetches of one key share a single
// call of fn. The call is detached from ctx cancellation: a caller that stops
// waiting does not abort the fetch, which still updates the entry.
func (s *Service) Fetch(ctx context.Context, key string, fn interfaces.QueryFunc) (any, interfaces.CacheStatus, error) {
	if state, ok := s.GetQueryState(key); ok && state.IsFresh() {
		s.metricsWriter.RecordCacheLookup(interfaces.CacheStatusHit.String())
		return state.Data, interfaces.CacheStatusHit, nil
	}
	s.metricsWriter.RecordCacheLookup(interfaces.CacheStatusMiss.String())

	data, err := s.do(ctx, key, fn)
	return data, interfaces.CacheStatusMiss, err
}

// Refetch runs fn for key even if the entry is fresh and stores the result.
// Until it completes, readers keep getting the current entry, which stays
// fresh. A refetch joins a fetch of the same key already in flight.
func (s *Service) Refetch(ctx context.Context, key string, fn interfaces.QueryFunc) (any, error) {
	return s.do(ctx, key, fn)
}

// do runs fn once per key at a time, detached from ctx cancellation
func (s *Service) do(ctx context.Context, key string, fn interfaces.QueryFunc) (any, error) {
	fetchCtx := context.WithoutCancel(ctx)
	resultCh := s.group.DoChan(key, func() (interface{}, error) {
		return s.runQuery(fetchCtx, key, fn)
	})

	select {
	case res := <-resultCh:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) runQuery(ctx context.Context, key string, fn interfaces.QueryFunc) (any, error) {
	s.beginFetch(key)

	data, err := fn(ctx)
	if err != nil {
		s.failFetch(key, err)
		return nil, err
	}

	s.completeFetch(key, data)
	return data, nil
}

func (s *Service) beginFetch(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.goCache.Get(key)
	if !ok {
		state = interfaces.QueryState{
			Key:    key,
			Status: interfaces.QueryStatusPending,
		}
	}
	state.FetchStatus = interfaces.FetchStatusFetching
	s.goCache.Set(state, s.config.entryTTL())

	logrus.WithField("key", key).Debug("Cache: fetch started")
	s.emit(events.Event{Key: key, Type: events.EventUpdated})
}

func (s *Service) completeFetch(key string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, _ := s.goCache.Get(key)
	s.goCache.Set(interfaces.QueryState{
		Key:           key,
		Data:          data,
		Status:        interfaces.QueryStatusSuccess,
		FetchStatus:   interfaces.FetchStatusIdle,
		DataUpdatedAt: s.now(),
		FetchCount:    prev.FetchCount + 1,
	}, s.config.entryTTL())

	logrus.WithField("key", key).Debug("Cache: fetch completed")
	s.emit(events.Event{Key: key, Type: events.EventUpdated})
}

// failFetch moves the entry to error. Previous data is kept for inspection
// but an errored entry is never fresh.
func (s *Service) failFetch(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.goCache.Get(key)
	if !ok {
		state = interfaces.QueryState{Key: key}
	}
	state.Status = interfaces.QueryStatusError
	state.FetchStatus = interfaces.FetchStatusIdle
	state.Err = err
	state.ErrorUpdatedAt = s.now()
	state.FetchCount++
	s.goCache.Set(state, s.config.entryTTL())

	logrus.WithError(err).WithField("key", key).Warn("Cache: fetch failed")
	s.emit(events.Event{Key: key, Type: events.EventUpdated})
}

// Invalidate marks the entry under key as invalidated. It returns false if
// there is no such entry or it was already invalidated.
func (s *Service) Invalidate(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.goCache.Get(key)
	if !ok || !s.markInvalidatedLocked(state) {
		return false
	}
	s.metricsWriter.RecordInvalidations(reasonManual, 1)
	return true
}

// InvalidatePrefix marks all entries matching prefix as invalidated and
// returns how many changed
func (s *Service) InvalidatePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, state := range s.goCache.States() {
		if MatchesPrefix(state.Key, prefix) && s.markInvalidatedLocked(state) {
			count++
		}
	}
	s.metricsWriter.RecordInvalidations(reasonManual, count)

	logrus.WithFields(logrus.Fields{
		"prefix": prefix,
		"count":  count,
	}).Debug("Cache: entries invalidated")
	return count
}

// InvalidateStale marks every successful entry older than StaleTime as
// invalidated. It is run periodically by the expiry scheduler.
func (s *Service) InvalidateStale() int {
	if s.config.StaleTime <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, state := range s.goCache.States() {
		if s.isStale(state) && s.markInvalidatedLocked(state) {
			count++
		}
	}
	s.metricsWriter.RecordInvalidations(reasonExpired, count)
	return count
}

// sweep marks stale entries invalidated and drops entries past CacheTime
// without waiting for the storage cleanup interval
func (s *Service) sweep() {
	s.InvalidateStale()
	s.goCache.DeleteExpired()
}

func (s *Service) markInvalidatedLocked(state interfaces.QueryState) bool {
	if state.IsInvalidated {
		return false
	}
	state.IsInvalidated = true
	if !s.goCache.Update(state) {
		return false
	}
	s.emit(events.Event{Key: state.Key, Type: events.EventInvalidated})
	return true
}

func (s *Service) isStale(state interfaces.QueryState) bool {
	if s.config.StaleTime <= 0 || state.Status != interfaces.QueryStatusSuccess || state.IsInvalidated {
		return false
	}
	return s.now().Sub(state.DataUpdatedAt) >= s.config.StaleTime
}

// Remove deletes entries by keys and returns how many existed
func (s *Service) Remove(keys ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	present := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := s.goCache.Get(key); ok {
			present = append(present, key)
		}
	}
	s.goCache.Delete(present)
	return len(present)
}

// Clear removes all entries
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goCache.Clear()
	s.emit(events.Event{Type: events.EventCleared})
}

// Snapshot returns all entries sorted by key. Entries past StaleTime are
// reported as invalidated even if the sweep has not reached them yet.
func (s *Service) Snapshot() []interfaces.QueryState {
	states := s.goCache.States()
	for i := range states {
		if s.isStale(states[i]) {
			states[i].IsInvalidated = true
		}
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Key < states[j].Key
	})
	return states
}

// SubscribeOnUpdate subscribes to entry change notifications
func (s *Service) SubscribeOnUpdate() events.ISubscription {
	return s.subscriptionManager.Subscribe()
}

func (s *Service) emit(event events.Event) {
	s.subscriptionManager.Emit(context.Background(), event)
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	return ServiceStats{
		Entries:     len(s.goCache.States()),
		Stored:      s.goCache.ItemCount(),
		Subscribers: s.subscriptionManager.Count(),
		StaleTime:   s.config.StaleTime,
		CacheTime:   s.config.CacheTime,
	}
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	Entries     int           `json:"entries"`
	Stored      int           `json:"stored"`
	Subscribers int           `json:"subscribers"`
	StaleTime   time.Duration `json:"stale_time"`
	CacheTime   time.Duration `json:"cache_time"`
}
