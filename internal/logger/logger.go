// Package logger provides leveled logging with support for debug, info, warn, and error levels.
// It wraps logrus to provide level-based filtering and structured output in either
// text or JSON format.
package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var defaultLogger = logrus.New()

// Init initializes the default logger with the specified level and format
func Init(level string, format string) {
	switch strings.ToLower(level) {
	case "debug":
		defaultLogger.SetLevel(logrus.DebugLevel)
	case "info":
		defaultLogger.SetLevel(logrus.InfoLevel)
	case "warn":
		defaultLogger.SetLevel(logrus.WarnLevel)
	case "error":
		defaultLogger.SetLevel(logrus.ErrorLevel)
	default:
		defaultLogger.SetLevel(logrus.InfoLevel)
	}

	if strings.ToLower(format) == "text" {
		defaultLogger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	} else {
		defaultLogger.SetFormatter(&logrus.JSONFormatter{})
	}
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	defaultLogger.Debugf(format, args...)
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	defaultLogger.Infof(format, args...)
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	defaultLogger.Warnf(format, args...)
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	defaultLogger.Errorf(format, args...)
}

// Fatal logs a message at ErrorLevel and exits
func Fatal(format string, args ...interface{}) {
	defaultLogger.Fatalf(format, args...)
}

// WithFields returns an entry carrying structured fields for contextual logging.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return defaultLogger.WithFields(logrus.Fields(fields))
}
