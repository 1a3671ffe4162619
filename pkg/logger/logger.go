// Package logger provides the roster engine's unified logging setup.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Config controls how the global logger is initialized.
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // json/console
	Output     string `json:"output"` // stdout/stderr/file
	FilePath   string `json:"file_path,omitempty"`
	TimeFormat string `json:"time_format,omitempty"`
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init initializes the global logger. Safe to call more than once; only the
// first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger, lazily initialized with defaults.
func Get() *zerolog.Logger {
	if logger.GetLevel() == zerolog.Disabled {
		Init(DefaultConfig())
	}
	return &logger
}

type runIDKey struct{}

// WithRunID attaches a solve-run id to ctx; every RosterLogger event logged
// against a context derived from it carries the id automatically.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// Info logs at info level.
func Info() *zerolog.Event { return Get().Info() }

// Warn logs at warn level.
func Warn() *zerolog.Event { return Get().Warn() }

// Error logs at error level.
func Error() *zerolog.Event { return Get().Error() }

// Fatal logs at fatal level.
func Fatal() *zerolog.Event { return Get().Fatal() }

// RosterLogger is the domain-specific logger used by the optimization
// pipeline: named events instead of ad hoc Msg strings scattered through
// the core. Every event is tagged with the component and, when the
// supplied context carries one, the run id WithRunID attached to it.
type RosterLogger struct{}

// NewRosterLogger creates the roster-component logger.
func NewRosterLogger() *RosterLogger {
	return &RosterLogger{}
}

// event returns the base logger for one call, enriched with the run id
// carried on ctx if there is one.
func (l *RosterLogger) event(ctx context.Context) *zerolog.Logger {
	le := Get().With().Str("component", "roster").Logger()
	if runID, ok := ctx.Value(runIDKey{}).(string); ok {
		le = le.With().Str("run_id", runID).Logger()
	}
	return &le
}

// StartSolve logs the beginning of a solve attempt.
func (l *RosterLogger) StartSolve(ctx context.Context, year, month, employees, days int) {
	l.event(ctx).Info().
		Int("year", year).
		Int("month", month).
		Int("employees", employees).
		Int("days", days).
		Msg("starting roster solve")
}

// ConstraintSkipped logs a malformed constraint row that was skipped.
func (l *RosterLogger) ConstraintSkipped(kind, reason string) {
	l.event(context.Background()).Warn().
		Str("constraint_type", kind).
		Str("reason", reason).
		Msg("skipped malformed constraint")
}

// SolveComplete logs the outcome of a solve attempt.
func (l *RosterLogger) SolveComplete(ctx context.Context, status string, duration time.Duration, objective float64) {
	l.event(ctx).Info().
		Str("status", status).
		Dur("duration", duration).
		Float64("objective", objective).
		Msg("roster solve complete")
}

// UnmatchedUnavailability logs a normalized name in the unavailability
// spreadsheet that does not correspond to any employee in the roster.
func (l *RosterLogger) UnmatchedUnavailability(name string) {
	l.event(context.Background()).Warn().
		Str("name", name).
		Msg("unavailability entry does not match any employee, ignoring")
}
