package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide structured logger.
var Log = logrus.New()

// ConfigureLogger switches the logger to JSON output at the given level.
func ConfigureLogger(level string) {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	Log.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}

// LogError is LogEvent at error level with the cause attached.
func LogError(requestID, module, action string, err error) {
	Log.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).WithError(err).Error("operation failed")
}
