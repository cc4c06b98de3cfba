// Package observability provides logging for code-server.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a code-server log level name to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetupLogging configures the global logger based on the provided settings.
func SetupLogging(level, format string, output io.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	zerolog.TimeFieldFormat = time.RFC3339

	if format == "console" || format == "text" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// SetupDefaultLogging sets up console logging on stderr.
func SetupDefaultLogging(level string) {
	SetupLogging(level, "console", os.Stderr)
}

// Logger returns a contextualized logger for a component.
func Logger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Event types for structured logging
const (
	EventConfigWritten    = "config_written"
	EventDataDirMigrated  = "data_dir_migrated"
	EventInstanceDetected = "instance_detected"
	EventOpenForwarded    = "open_forwarded"
)

// LogEvent logs a structured event.
func LogEvent(logger zerolog.Logger, event string, fields map[string]interface{}) {
	e := logger.Info().Str("event", event)
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg("")
}

// SanitizeForLog removes sensitive data from a map before logging.
func SanitizeForLog(data map[string]interface{}) map[string]interface{} {
	sanitized := make(map[string]interface{})
	sensitiveKeys := map[string]bool{
		"password":        true,
		"hashed-password": true,
		"hashed_password": true,
		"secret":          true,
		"token":           true,
	}

	for k, v := range data {
		if sensitiveKeys[k] {
			sanitized[k] = "[REDACTED]"
		} else {
			sanitized[k] = v
		}
	}

	return sanitized
}
