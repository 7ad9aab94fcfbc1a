// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup applies level and format to the standard logrus logger
func Setup(level, format string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	formatter, err := newFormatter(format)
	if err != nil {
		return err
	}

	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(formatter)
	return nil
}

func newFormatter(format string) (logrus.Formatter, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		}, nil
	case FormatJSON:
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}
