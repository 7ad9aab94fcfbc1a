package core

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

type namedService struct {
	name    string
	service Interface
}

// Registry manages all services
type Registry struct {
	services []namedService
}

// NewRegistry creates a new core registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]namedService, 0),
	}
}

// Register adds a service to the registry. Services are started in
// registration order.
func (sr *Registry) Register(name string, service Interface) {
	sr.services = append(sr.services, namedService{name: name, service: service})
}

// Names returns registered service names in start order
func (sr *Registry) Names() []string {
	names := make([]string, len(sr.services))
	for i, s := range sr.services {
		names[i] = s.name
	}
	return names
}

// StartAll starts all registered services. If one fails, the services
// started before it are stopped again.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, s := range sr.services {
		if err := s.service.Start(ctx); err != nil {
			stopInReverse(sr.services[:i])
			return fmt.Errorf("failed to start %s: %w", s.name, err)
		}
		logrus.WithField("service", s.name).Debug("Service started")
	}
	return nil
}

// StopAll stops all registered services in reverse order
func (sr *Registry) StopAll() {
	stopInReverse(sr.services)
}

func stopInReverse(services []namedService) {
	for i := len(services) - 1; i >= 0; i-- {
		services[i].service.Stop()
		logrus.WithField("service", services[i].name).Debug("Service stopped")
	}
}
