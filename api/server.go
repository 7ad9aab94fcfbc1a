package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/status-im/user-directory/cache"
	"github.com/status-im/user-directory/config"
	"github.com/status-im/user-directory/interfaces"
)

type Server struct {
	cfg          config.ServerConfig
	usersService interfaces.IUsersService
	cacheService *cache.Service
	upgrader     websocket.Upgrader

	mu           sync.Mutex
	server       *http.Server
	addr         net.Addr
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

func New(cfg config.ServerConfig, usersService interfaces.IUsersService, cacheService *cache.Service) *Server {
	return &Server{
		cfg:          cfg,
		usersService: usersService,
		cacheService: cacheService,
		shutdown:     make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Router builds the HTTP routes with all middleware applied
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, accessLogMiddleware, timeoutMiddleware(s.cfg.RequestTimeout))

	router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	v1.HandleFunc("/users/invalidate", s.handleInvalidateUsers).Methods(http.MethodPost)
	v1.HandleFunc("/users/{id}", s.handleGetUser).Methods(http.MethodGet)

	v1.HandleFunc("/cache", s.handleCacheSnapshot).Methods(http.MethodGet)
	v1.HandleFunc("/cache", s.handleCacheClear).Methods(http.MethodDelete)
	v1.HandleFunc("/cache/invalidate", s.handleCacheInvalidate).Methods(http.MethodPost)
	v1.HandleFunc("/cache/ws", s.handleCacheStream).Methods(http.MethodGet)
	v1.HandleFunc("/cache/{key}", s.handleCacheRemove).Methods(http.MethodDelete)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	if s.usersService == nil || s.cacheService == nil {
		return fmt.Errorf("api server dependencies not provided")
	}

	listener, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}

	server := &http.Server{
		Handler: s.Router(),
	}

	s.mu.Lock()
	s.server = server
	s.addr = listener.Addr()
	s.mu.Unlock()

	logrus.Infof("Server starting at http://localhost:%s", s.cfg.Port)
	logrus.Info("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Server error")
		}
	}()

	return nil
}

// Addr returns the address the server listens on, nil before Start
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Stop gracefully shuts down the server and closes devtools streams
func (s *Server) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)
	})

	s.mu.Lock()
	server := s.server
	s.server = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Error shutting down server")
	}
}
