package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/user-directory/events"
	"github.com/status-im/user-directory/interfaces"
)

func newTestService(t *testing.T, config Config) *Service {
	t.Helper()
	service := NewService(config)
	t.Cleanup(service.Stop)
	return service
}

func staticQuery(data any, calls *int32) interfaces.QueryFunc {
	return func(ctx context.Context) (any, error) {
		atomic.AddInt32(calls, 1)
		return data, nil
	}
}

// setQueryData stores data under key as a fresh successful entry
func (s *Service) setQueryData(key string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goCache.Set(interfaces.QueryState{
		Key:           key,
		Data:          data,
		Status:        interfaces.QueryStatusSuccess,
		FetchStatus:   interfaces.FetchStatusIdle,
		DataUpdatedAt: s.now(),
	}, s.config.entryTTL())
	s.emit(events.Event{Key: key, Type: events.EventUpdated})
}

// fakeClock lets tests move time forward without sleeping
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestService_FetchMissThenHit(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())
	var calls int32

	data, status, err := service.Fetch(context.Background(), "users", staticQuery("payload", &calls))
	require.NoError(t, err)
	assert.Equal(t, "payload", data)
	assert.Equal(t, interfaces.CacheStatusMiss, status)

	data, status, err = service.Fetch(context.Background(), "users", staticQuery("other", &calls))
	require.NoError(t, err)
	assert.Equal(t, "payload", data)
	assert.Equal(t, interfaces.CacheStatusHit, status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	state, ok := service.GetQueryState("users")
	require.True(t, ok)
	assert.Equal(t, interfaces.QueryStatusSuccess, state.Status)
	assert.Equal(t, interfaces.FetchStatusIdle, state.FetchStatus)
	assert.False(t, state.IsInvalidated)
	assert.Equal(t, 1, state.FetchCount)
	assert.True(t, state.IsFresh())
}

func TestService_GetQueryStateMissing(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())

	_, ok := service.GetQueryState("users")
	assert.False(t, ok)

	_, ok = service.GetQueryData("users")
	assert.False(t, ok)
}

func TestService_FetchDeduplicatesConcurrentCalls(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())

	var calls int32
	release := make(chan struct{})
	query := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "payload", nil
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			data, _, err := service.Fetch(context.Background(), "users", query)
			assert.NoError(t, err)
			results[idx] = data
		}(i)
	}

	require.Eventually(t, func() bool {
		state, ok := service.GetQueryState("users")
		return ok && state.FetchStatus == interfaces.FetchStatusFetching
	}, time.Second, 5*time.Millisecond)

	// give the remaining callers time to join the in-flight fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, data := range results {
		assert.Equal(t, "payload", data)
	}
}

func TestService_PendingStateDuringFirstFetch(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = service.Fetch(context.Background(), "users", func(ctx context.Context) (any, error) {
			<-release
			return "payload", nil
		})
	}()

	require.Eventually(t, func() bool {
		_, ok := service.GetQueryState("users")
		return ok
	}, time.Second, 5*time.Millisecond)

	state, _ := service.GetQueryState("users")
	assert.Equal(t, interfaces.QueryStatusPending, state.Status)
	assert.Equal(t, interfaces.FetchStatusFetching, state.FetchStatus)
	assert.False(t, state.IsFresh())

	close(release)
	<-done

	state, _ = service.GetQueryState("users")
	assert.Equal(t, interfaces.QueryStatusSuccess, state.Status)
}

func TestService_RefetchKeepsPreviousData(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())
	var calls int32

	_, _, err := service.Fetch(context.Background(), "users", staticQuery("v1", &calls))
	require.NoError(t, err)
	require.True(t, service.Invalidate("users"))

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		data, status, err := service.Fetch(context.Background(), "users", func(ctx context.Context) (any, error) {
			<-release
			return "v2", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "v2", data)
		assert.Equal(t, interfaces.CacheStatusMiss, status)
	}()

	require.Eventually(t, func() bool {
		state, _ := service.GetQueryState("users")
		return state.FetchStatus == interfaces.FetchStatusFetching
	}, time.Second, 5*time.Millisecond)

	state, _ := service.GetQueryState("users")
	assert.Equal(t, interfaces.QueryStatusSuccess, state.Status)
	assert.Equal(t, "v1", state.Data)
	assert.True(t, state.IsInvalidated)
	assert.False(t, state.IsFresh())

	close(release)
	<-done

	state, _ = service.GetQueryState("users")
	assert.Equal(t, "v2", state.Data)
	assert.False(t, state.IsInvalidated)
	assert.Equal(t, 2, state.FetchCount)
}

func TestService_RefetchKeepsEntryFresh(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())
	var calls int32

	_, _, err := service.Fetch(context.Background(), "users", staticQuery("v1", &calls))
	require.NoError(t, err)

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		data, err := service.Refetch(context.Background(), "users", func(ctx context.Context) (any, error) {
			<-release
			return "v2", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "v2", data)
	}()

	require.Eventually(t, func() bool {
		state, _ := service.GetQueryState("users")
		return state.FetchStatus == interfaces.FetchStatusFetching
	}, time.Second, 5*time.Millisecond)

	// readers are still served from the current entry
	state, _ := service.GetQueryState("users")
	assert.True(t, state.IsFresh())
	assert.Equal(t, "v1", state.Data)

	data, status, err := service.Fetch(context.Background(), "users", staticQuery("unused", &calls))
	require.NoError(t, err)
	assert.Equal(t, interfaces.CacheStatusHit, status)
	assert.Equal(t, "v1", data)

	close(release)
	<-done

	state, _ = service.GetQueryState("users")
	assert.Equal(t, "v2", state.Data)
	assert.Equal(t, interfaces.FetchStatusIdle, state.FetchStatus)
	assert.Equal(t, 2, state.FetchCount)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestService_RefetchError(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())

	fetchErr := errors.New("source down")
	_, err := service.Refetch(context.Background(), "users", func(ctx context.Context) (any, error) {
		return nil, fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)

	state, ok := service.GetQueryState("users")
	require.True(t, ok)
	assert.Equal(t, interfaces.QueryStatusError, state.Status)
}

func TestService_FetchError(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())
	var calls int32
	fetchErr := errors.New("upstream down")

	_, _, err := service.Fetch(context.Background(), "users", staticQuery("v1", &calls))
	require.NoError(t, err)
	service.Invalidate("users")

	_, status, err := service.Fetch(context.Background(), "users", func(ctx context.Context) (any, error) {
		return nil, fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, interfaces.CacheStatusMiss, status)

	state, ok := service.GetQueryState("users")
	require.True(t, ok)
	assert.Equal(t, interfaces.QueryStatusError, state.Status)
	assert.ErrorIs(t, state.Err, fetchErr)
	assert.Equal(t, "v1", state.Data)
	assert.False(t, state.IsFresh())
	assert.False(t, state.ErrorUpdatedAt.IsZero())

	// an errored entry is fetched again on next use
	data, status, err := service.Fetch(context.Background(), "users", staticQuery("v2", &calls))
	require.NoError(t, err)
	assert.Equal(t, "v2", data)
	assert.Equal(t, interfaces.CacheStatusMiss, status)
}

func TestService_FetchContextCancelled(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())

	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, _, err := service.Fetch(ctx, "users", func(ctx context.Context) (any, error) {
			<-release
			return "payload", ctx.Err()
		})
		errCh <- err
	}()

	require.Eventually(t, func() bool {
		_, ok := service.GetQueryState("users")
		return ok
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Fetch did not return after cancellation")
	}

	// the fetch itself keeps running and still populates the entry
	close(release)
	require.Eventually(t, func() bool {
		data, ok := service.GetQueryData("users")
		return ok && data == "payload"
	}, time.Second, 5*time.Millisecond)
}

func TestService_StaleTimeInvalidatesOnRead(t *testing.T) {
	config := DefaultCacheConfig()
	config.StaleTime = time.Minute
	config.ExpiryCheckInterval = 0
	service := newTestService(t, config)

	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	service.now = clock.Now

	var calls int32
	_, _, err := service.Fetch(context.Background(), "users", staticQuery("v1", &calls))
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	state, _ := service.GetQueryState("users")
	assert.False(t, state.IsInvalidated)

	clock.Advance(time.Second)
	state, _ = service.GetQueryState("users")
	assert.True(t, state.IsInvalidated)

	// the invalidation was persisted, not only reported
	raw, ok := service.goCache.Get("users")
	require.True(t, ok)
	assert.True(t, raw.IsInvalidated)

	_, status, err := service.Fetch(context.Background(), "users", staticQuery("v2", &calls))
	require.NoError(t, err)
	assert.Equal(t, interfaces.CacheStatusMiss, status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestService_ZeroStaleTimeNeverExpires(t *testing.T) {
	config := DefaultCacheConfig()
	config.StaleTime = 0
	service := newTestService(t, config)

	clock := &fakeClock{now: time.Now()}
	service.now = clock.Now

	service.setQueryData("users", "v1")
	clock.Advance(24 * time.Hour)

	state, _ := service.GetQueryState("users")
	assert.True(t, state.IsFresh())
	assert.Equal(t, 0, service.InvalidateStale())
}

func TestService_InvalidateStale(t *testing.T) {
	config := DefaultCacheConfig()
	config.StaleTime = time.Minute
	service := newTestService(t, config)

	clock := &fakeClock{now: time.Now()}
	service.now = clock.Now

	service.setQueryData("users", "old")
	clock.Advance(2 * time.Minute)
	service.setQueryData("users:1", "new")

	assert.Equal(t, 1, service.InvalidateStale())
	assert.Equal(t, 0, service.InvalidateStale())

	state, _ := service.goCache.Get("users")
	assert.True(t, state.IsInvalidated)
	state, _ = service.goCache.Get("users:1")
	assert.False(t, state.IsInvalidated)
}

func TestService_ExpirySchedulerMarksEntries(t *testing.T) {
	config := DefaultCacheConfig()
	config.StaleTime = 50 * time.Millisecond
	config.ExpiryCheckInterval = 10 * time.Millisecond
	service := newTestService(t, config)

	require.NoError(t, service.Start(context.Background()))
	service.setQueryData("users", "v1")

	require.Eventually(t, func() bool {
		state, ok := service.goCache.Get("users")
		return ok && state.IsInvalidated
	}, time.Second, 10*time.Millisecond)
}

func TestService_CacheTimeRemovesEntries(t *testing.T) {
	config := DefaultCacheConfig()
	config.CacheTime = 50 * time.Millisecond
	config.CleanupInterval = 10 * time.Millisecond
	service := newTestService(t, config)

	sub := service.SubscribeOnUpdate()
	defer sub.Cancel()

	service.setQueryData("users", "v1")

	require.Eventually(t, func() bool {
		_, ok := service.GetQueryState("users")
		return !ok
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		for {
			select {
			case event := <-sub.Chan():
				if event.Type == events.EventRemoved && event.Key == "users" {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 10*time.Millisecond)
}

func TestService_SweepDeletesExpiredEntries(t *testing.T) {
	config := DefaultCacheConfig()
	config.CacheTime = 50 * time.Millisecond
	config.CleanupInterval = 0
	config.ExpiryCheckInterval = 10 * time.Millisecond
	service := newTestService(t, config)

	sub := service.SubscribeOnUpdate()
	defer sub.Cancel()

	require.NoError(t, service.Start(context.Background()))
	service.setQueryData("users", "v1")
	assert.Equal(t, 1, service.Stats().Stored)

	// storage has no cleanup of its own, only the sweep drops the entry
	require.Eventually(t, func() bool {
		for {
			select {
			case event := <-sub.Chan():
				if event.Type == events.EventRemoved && event.Key == "users" {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, service.Stats().Stored)
}

func TestService_Invalidate(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())

	assert.False(t, service.Invalidate("users"))

	service.setQueryData("users", "v1")
	assert.True(t, service.Invalidate("users"))
	assert.False(t, service.Invalidate("users"))

	_, ok := service.GetQueryData("users")
	assert.False(t, ok)
}

func TestService_InvalidatePrefix(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())

	service.setQueryData("users", "all")
	service.setQueryData("users:0", "alice")
	service.setQueryData("users:1", "bob")
	service.setQueryData("usersettings", "other")

	assert.Equal(t, 3, service.InvalidatePrefix("users"))
	assert.Equal(t, 0, service.InvalidatePrefix("users"))

	for _, key := range []string{"users", "users:0", "users:1"} {
		state, _ := service.GetQueryState(key)
		assert.Truef(t, state.IsInvalidated, "%s should be invalidated", key)
	}
	state, _ := service.GetQueryState("usersettings")
	assert.False(t, state.IsInvalidated)

	assert.Equal(t, 1, service.InvalidatePrefix(""))
}

func TestService_RemoveAndClear(t *testing.T) {
	service := newTestService(t, DefaultCacheConfig())

	sub := service.SubscribeOnUpdate()
	defer sub.Cancel()

	service.setQueryData("users", "all")
	service.setQueryData("users:1", "bob")
	service.setQueryData("users:2", "carol")
	assert.Equal(t, 3, service.Stats().Entries)

	assert.Equal(t, 1, service.Remove("users:1", "missing"))
	assert.Equal(t, 0, service.Remove("users:1"))
	assert.Equal(t, 2, service.Stats().Entries)
	_, ok := service.GetQueryState("users:1")
	assert.False(t, ok)

	service.Clear()
	assert.Equal(t, 0, service.Stats().Entries)

	var received []events.Event
	for len(sub.Chan()) > 0 {
		received = append(received, <-sub.Chan())
	}
	assert.Equal(t, []events.Event{
		{Key: "users", Type: events.EventUpdated},
		{Key: "users:1", Type: events.EventUpdated},
		{Key: "users:2", Type: events.EventUpdated},
		{Key: "users:1", Type: events.EventRemoved},
		{Type: events.EventCleared},
	}, received)
}

func TestService_Snapshot(t *testing.T) {
	config := DefaultCacheConfig()
	config.StaleTime = time.Minute
	service := newTestService(t, config)

	clock := &fakeClock{now: time.Now()}
	service.now = clock.Now

	service.setQueryData("users:1", "bob")
	clock.Advance(2 * time.Minute)
	service.setQueryData("users", "all")

	snapshot := service.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "users", snapshot[0].Key)
	assert.False(t, snapshot[0].IsInvalidated)
	assert.Equal(t, "users:1", snapshot[1].Key)
	assert.True(t, snapshot[1].IsInvalidated)
}

func TestService_StartStop(t *testing.T) {
	service := NewService(DefaultCacheConfig())

	require.NoError(t, service.Start(context.Background()))
	service.setQueryData("users", "all")

	service.Stop()
	assert.Equal(t, 0, service.Stats().Entries)
}

func TestService_StartInvalidConfig(t *testing.T) {
	config := DefaultCacheConfig()
	config.StaleTime = -time.Second
	service := NewService(config)

	err := service.Start(context.Background())
	assert.ErrorContains(t, err, "invalid cache config")
}
