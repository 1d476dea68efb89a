// Package observability provides the structured logger and operator-facing
// reporting for the batch job.
package observability

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the job's logger: JSON output with a stable field map,
// level driven by the LOG_LEVEL environment variable.
func NewLogger() *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// JobLogger returns the logger scoped with the job name field.
func JobLogger(job string) logrus.FieldLogger {
	return NewLogger().WithField("job", job)
}
