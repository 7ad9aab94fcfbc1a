package users

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/status-im/user-directory/config"
	"github.com/status-im/user-directory/interfaces"
	"github.com/status-im/user-directory/metrics"
	"github.com/status-im/user-directory/scheduler"
)

// Service serves users through the query cache
type Service struct {
	cache         interfaces.IQueryCache
	source        interfaces.IUsersSource
	accessor      *Accessor
	config        config.UsersConfig
	metricsWriter *metrics.MetricsWriter
	prefetcher    *scheduler.Scheduler
	initialized   atomic.Bool
}

// NewService creates a new users service
func NewService(cache interfaces.IQueryCache, source interfaces.IUsersSource, cfg config.UsersConfig) *Service {
	s := &Service{
		cache:         cache,
		source:        source,
		accessor:      NewAccessor(cache, source),
		config:        cfg,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceUsers),
	}

	if cfg.PrefetchInterval > 0 {
		s.prefetcher = scheduler.New("users-prefetch", cfg.PrefetchInterval, s.prefetch)
	}
	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	if s.source == nil {
		return fmt.Errorf("users source not provided")
	}

	if s.prefetcher != nil {
		s.prefetcher.Start(ctx, true)
	}
	s.initialized.Store(true)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.prefetcher != nil {
		s.prefetcher.Stop()
	}
	s.initialized.Store(false)
}

// Healthy reports whether the service has been started
func (s *Service) Healthy() bool {
	return s.initialized.Load()
}

// ListUsers returns the whole collection
func (s *Service) ListUsers(ctx context.Context) ([]interfaces.User, interfaces.CacheStatus, error) {
	data, status, err := s.cache.Fetch(ctx, UsersKey, s.loadCollection)
	s.metricsWriter.RecordCacheLookup(status.String())
	if err != nil {
		return nil, status, err
	}

	users, ok := data.(*Collection)
	if !ok {
		return nil, status, fmt.Errorf("unexpected data type %T under %s", data, UsersKey)
	}
	return users.Items(), status, nil
}

func (s *Service) loadCollection(ctx context.Context) (any, error) {
	items, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch all users: %w", err)
	}
	return NewCollection(items)
}

// resolvedUser is what a single user entry holds. It keeps how the accessor
// found the user so every caller sharing one fetch reports the same status.
type resolvedUser struct {
	interfaces.User
	ResolvedFrom interfaces.CacheStatus `json:"resolved_from"`
}

// resolveError carries the accessor status of a failed resolution
type resolveError struct {
	status interfaces.CacheStatus
	err    error
}

func (e *resolveError) Error() string { return e.err.Error() }

func (e *resolveError) Unwrap() error { return e.err }

// GetUser returns one user. The reported status is hit when the user's own
// entry was fresh, otherwise it tells whether the accessor derived the user
// from the cached collection or asked the source.
func (s *Service) GetUser(ctx context.Context, id int) (interfaces.User, interfaces.CacheStatus, error) {
	data, status, err := s.cache.Fetch(ctx, UserKey(id), func(ctx context.Context) (any, error) {
		user, st, err := s.accessor.Resolve(ctx, id)
		if err != nil {
			return nil, &resolveError{status: st, err: err}
		}
		return resolvedUser{User: user, ResolvedFrom: st}, nil
	})
	if err != nil {
		var resolveErr *resolveError
		if errors.As(err, &resolveErr) {
			status, err = resolveErr.status, resolveErr.err
		}
		s.metricsWriter.RecordCacheLookup(status.String())
		return interfaces.User{}, status, err
	}

	resolved, ok := data.(resolvedUser)
	if !ok {
		return interfaces.User{}, status, fmt.Errorf("unexpected data type %T under %s", data, UserKey(id))
	}
	if status != interfaces.CacheStatusHit {
		status = resolved.ResolvedFrom
	}
	s.metricsWriter.RecordCacheLookup(status.String())
	return resolved.User, status, nil
}

// InvalidateUsers marks the collection and every single user entry
// invalidated. With prefetch enabled the collection is reloaded right away.
func (s *Service) InvalidateUsers() int {
	count := s.cache.InvalidatePrefix(UsersKey)
	if s.prefetcher != nil && s.prefetcher.IsRunning() {
		s.prefetcher.Trigger()
	}
	logrus.WithField("count", count).Info("Users cache invalidated")
	return count
}

// prefetch reloads the collection. The cached one keeps answering reads
// until the new one is stored.
func (s *Service) prefetch(ctx context.Context) error {
	_, err := s.cache.Refetch(ctx, UsersKey, s.loadCollection)
	return err
}
