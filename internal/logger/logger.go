package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with application-specific methods
type Logger struct {
	zerolog.Logger
}

// New creates a new Logger instance writing to stderr, so command output on
// stdout stays machine-readable.
func New(level string, format string) *Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a Logger writing to w
func NewWithWriter(w io.Writer, level string, format string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger

	if format == "text" || format == "console" {
		// Human-readable output for interactive use
		output := zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
		logger = zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(w).Level(lvl).With().Timestamp().Caller().Logger()
	}

	return &Logger{Logger: logger}
}

// Nop returns a Logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithComponent returns a new logger with the component name attached
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.With().Str("component", component).Logger(),
	}
}

// WithTemplate returns a new logger with the template key attached
func (l *Logger) WithTemplate(key string) *Logger {
	return &Logger{
		Logger: l.With().Str("template", key).Logger(),
	}
}

// SendAudit records the outcome of one send attempt
func (l *Logger) SendAudit(templateKey, recipient, outcome, messageID string, err error) {
	event := l.Info()
	if err != nil {
		event = l.Warn().Err(err)
	}

	event = event.
		Str("audit", "true").
		Str("action", "email.send").
		Str("template", templateKey).
		Str("recipient", recipient).
		Str("outcome", outcome)

	if messageID != "" {
		event = event.Str("message_id", messageID)
	}

	event.Msg("audit log")
}
