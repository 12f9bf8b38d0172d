// Package logger configures the process-wide structured logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger for the given level and environment. Production
// gets JSON output; anything else gets colored text for local use.
func New(level, env string) *logrus.Logger {
	log := logrus.New()

	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetOutput(os.Stdout)

	return log
}
