package core

import (
	"context"
	"fmt"

	"github.com/status-im/user-directory/api"
	"github.com/status-im/user-directory/cache"
	"github.com/status-im/user-directory/config"
	"github.com/status-im/user-directory/events"
	"github.com/status-im/user-directory/metrics"
	"github.com/status-im/user-directory/users"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Cache layer shared by every data service
	cacheService := cache.NewService(cfg.Cache)
	registry.Register("cache", cacheService)

	source, err := users.NewMemorySource(cfg.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to create users source: %w", err)
	}

	usersService := users.NewService(cacheService, source, cfg.Users)
	registry.Register("users", usersService)

	server := api.New(cfg.Server, usersService, cacheService)
	registry.Register("api", server)

	watchCacheSize(ctx, cacheService)

	return registry, nil
}

// watchCacheSize keeps the cache size gauge in line with the cache content
func watchCacheSize(ctx context.Context, cacheService *cache.Service) {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceCache)
	cacheService.SubscribeOnUpdate().Watch(ctx, func(events.Event) {
		metricsWriter.RecordCacheSize(cacheService.Stats().Entries)
	}, true)
}
