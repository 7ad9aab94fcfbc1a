package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Task is a unit of periodic work. A returned error is logged and does not
// stop the schedule.
type Task func(ctx context.Context) error

// Scheduler runs a named task at a fixed interval in a background goroutine
type Scheduler struct {
	name     string
	interval time.Duration
	task     Task
	trigger  chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
}

// New creates a new Scheduler instance
func New(name string, interval time.Duration, task Task) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		trigger:  make(chan struct{}, 1),
	}
}

// Start begins executing the task at the configured interval
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	logrus.WithFields(logrus.Fields{
		"scheduler": s.name,
		"interval":  s.interval,
	}).Debug("Scheduler started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.run(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-s.trigger:
				s.run(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Trigger requests an extra run as soon as possible. Triggers that arrive
// while one is already pending are merged.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.task(ctx); err != nil {
		logrus.WithError(err).WithField("scheduler", s.name).Warn("Scheduled task failed")
	}
}

// Stop terminates the periodic task execution and waits for a running task
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the scheduler has been started and not stopped
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Name returns the scheduler name used in logs
func (s *Scheduler) Name() string {
	return s.name
}
