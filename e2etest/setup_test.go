package e2etest

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/status-im/user-directory/core"
)

// TestEnv represents a test environment
type TestEnv struct {
	Registry      *core.Registry
	Context       context.Context
	CancelFunc    context.CancelFunc
	ConfigPath    string
	ServerBaseURL string
}

// SetupTest sets up the test environment
func SetupTest(t *testing.T) *TestEnv {
	ctx, cancel := context.WithCancel(context.Background())

	// the config file pins the port, make sure the environment does not override it
	t.Setenv("PORT", "")

	cfg, configPath, err := loadTestConfig()
	if err != nil {
		cancel()
		t.Fatalf("Failed to load test config: %v", err)
	}

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		cleanupTestConfig(configPath)
		cancel()
		t.Fatalf("Failed to setup services: %v", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		cleanupTestConfig(configPath)
		cancel()
		t.Fatalf("Failed to start services: %v", err)
	}

	serverBaseURL := fmt.Sprintf("http://localhost:%s", cfg.Server.Port)
	env := &TestEnv{
		Registry:      registry,
		Context:       ctx,
		CancelFunc:    cancel,
		ConfigPath:    configPath,
		ServerBaseURL: serverBaseURL,
	}

	if err := waitForServer(serverBaseURL, 5*time.Second); err != nil {
		env.TearDown()
		t.Fatalf("Server not responding: %v", err)
	}

	return env
}

func waitForServer(baseURL string, maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	for {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			err = fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// TearDown releases test environment resources
func (env *TestEnv) TearDown() {
	if env.Registry != nil {
		env.Registry.StopAll()
	}
	if env.CancelFunc != nil {
		env.CancelFunc()
	}
	if env.ConfigPath != "" {
		cleanupTestConfig(env.ConfigPath)
	}
}
