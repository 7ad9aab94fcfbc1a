package users

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/status-im/user-directory/config"
	"github.com/status-im/user-directory/interfaces"
	"github.com/status-im/user-directory/metrics"
)

// MemorySource serves users from memory after a configurable delay, standing
// in for a slow remote directory
type MemorySource struct {
	users         *Collection
	delay         time.Duration
	limiter       *rate.Limiter
	metricsWriter *metrics.MetricsWriter
}

// NewMemorySource creates a source seeded from cfg.Seed
func NewMemorySource(cfg config.UsersConfig) (*MemorySource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := make([]interfaces.User, 0, len(cfg.Seed))
	for _, u := range cfg.Seed {
		seed = append(seed, interfaces.User{ID: u.ID, Name: u.Name})
	}
	users, err := NewCollection(seed)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}

	return &MemorySource{
		users:         users,
		delay:         cfg.FetchDelay,
		limiter:       limiter,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceUsers),
	}, nil
}

// FetchAll returns every user in seed order
func (s *MemorySource) FetchAll(ctx context.Context) (result []interfaces.User, err error) {
	start := time.Now()
	defer func() {
		s.metricsWriter.RecordSourceRequest(metrics.OperationFetchAll, time.Since(start), err)
	}()

	logrus.Info("Fetching all users")

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.users.Items(), nil
}

// FetchOne returns the user with the given id or ErrNotFound
func (s *MemorySource) FetchOne(ctx context.Context, id int) (user interfaces.User, err error) {
	start := time.Now()
	defer func() {
		s.metricsWriter.RecordSourceRequest(metrics.OperationFetchOne, time.Since(start), err)
	}()

	logrus.WithField("id", id).Info("Fetching user")

	if err := s.wait(ctx); err != nil {
		return interfaces.User{}, err
	}

	user, ok := s.users.Find(id)
	if !ok {
		return interfaces.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

// wait applies throttling and the simulated latency
func (s *MemorySource) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", ErrFetchFailed, err)
	}

	if s.delay <= 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		return nil
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrFetchFailed, ctx.Err())
	}
}
