package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/status-im/user-directory/config"
	"github.com/status-im/user-directory/core"
	"github.com/status-im/user-directory/logging"
)

const defaultConfigPath = "config.yaml"

func main() {
	cmd := &cli.Command{
		Name:  "user-directory",
		Usage: "Serve the user directory through a read-through query cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Value:   defaultConfigPath,
				Sources: cli.EnvVars("USER_DIRECTORY_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "port",
				Usage:   "HTTP port, overrides server.port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level, overrides logging.level",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.WithError(err).Fatal("user-directory failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up services: %w", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		return err
	}
	logrus.WithField("services", registry.Names()).Info("All services started")

	<-ctx.Done()
	logrus.Info("Received shutdown signal, stopping services...")
	registry.StopAll()
	logrus.Info("Shutdown complete")
	return nil
}

// loadConfig reads the config file and applies flag overrides. A missing
// file is only an error when the path was given explicitly.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")

	var (
		cfg *config.Config
		err error
	)
	if cmd.IsSet("config") {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.LoadConfigOrDefault(path)
	}
	if err != nil {
		return nil, err
	}

	if port := cmd.String("port"); port != "" {
		cfg.Server.Port = port
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, cfg.Validate()
}
