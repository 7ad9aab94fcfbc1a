package e2etest

import (
	"os"
	"path/filepath"

	"github.com/status-im/user-directory/config"
)

// createTestConfig creates a test configuration and returns the path to the file
func createTestConfig() (string, error) {
	tempDir, err := os.MkdirTemp("", "user-directory-test")
	if err != nil {
		return "", err
	}

	configContent := `
server:
  port: "8081"
  request_timeout: 2s
  shutdown_timeout: 1s

logging:
  level: warn

cache:
  stale_time: 1m
  cache_time: 5m
  cleanup_interval: 1m
  expiry_check_interval: 1s

users:
  fetch_delay: 50ms     # short delay for tests
  seed:
    - id: 0
      name: Alice
    - id: 1
      name: Bob
    - id: 7
      name: Carol
`

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig() (*config.Config, string, error) {
	configPath, err := createTestConfig()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}
