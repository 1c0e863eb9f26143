// Package logging provides component loggers for the sift file analyzer.
// Log lines go to stderr so they never mix with the report on stdout, and
// optionally to a log file as well.
//
// Basic usage:
//
//	cfg := logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	}
//	if err := logging.Init(cfg); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Close()
//
//	logger := logging.Get("scanner")
//	logger.Info("scan started", "path", "/home/user")
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) toCharmLevel() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelInfo:
		return log.InfoLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ErrInvalidFormat is returned when an invalid log format string is provided.
var ErrInvalidFormat = errors.New("invalid log format")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Log format names.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// ParseFormat parses a format name into a charmbracelet/log formatter.
// An empty string selects text.
func ParseFormat(s string) (log.Formatter, error) {
	switch strings.ToLower(s) {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the default log level (debug, info, warn, error).
	Level string

	// Format selects the line format: text, json or logfmt.
	Format string

	// Output receives console log lines. Nil means os.Stderr.
	Output io.Writer

	// Path is an optional log file. Lines are appended to it in addition
	// to the console. Empty disables file logging.
	Path string

	// Components maps component names to their log levels.
	Components map[string]string
}

// Logger wraps charmbracelet/log with component identification.
type Logger struct {
	console   *log.Logger
	file      *log.Logger
	component string
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	logTo(l.console, level, msg, args...)
	if l.file != nil {
		logTo(l.file, level, msg, args...)
	}
}

func logTo(logger *log.Logger, level Level, msg string, args ...interface{}) {
	switch level {
	case LevelDebug:
		logger.Debug(msg, args...)
	case LevelInfo:
		logger.Info(msg, args...)
	case LevelWarn:
		logger.Warn(msg, args...)
	case LevelError:
		logger.Error(msg, args...)
	}
}

// With returns a new logger with additional context.
func (l *Logger) With(args ...interface{}) *Logger {
	newLogger := &Logger{
		console:   l.console.With(args...),
		component: l.component,
	}
	if l.file != nil {
		newLogger.file = l.file.With(args...)
	}
	return newLogger
}

// Component returns the component name of the logger.
func (l *Logger) Component() string {
	return l.component
}

type state struct {
	mu          sync.RWMutex
	initialized bool
	level       Level
	formatter   log.Formatter
	output      io.Writer
	file        *os.File
	components  map[string]Level
	loggers     map[string]*Logger
}

var globalState = &state{
	loggers:    make(map[string]*Logger),
	components: make(map[string]Level),
}

// Init initializes the logging system with the given configuration.
// Before Init is called, all loggers write to io.Discard. Loggers obtained
// before Init are rebuilt in place, so package-level loggers pick up the
// configuration.
func Init(cfg Config) error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	formatter, err := ParseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("parsing log format: %w", err)
	}

	components := make(map[string]Level, len(cfg.Components))
	for comp, lvl := range cfg.Components {
		parsed, err := ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("parsing level for component %s: %w", comp, err)
		}
		components[comp] = parsed
	}

	var file *os.File
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
	}

	if globalState.file != nil {
		if err := globalState.file.Close(); err != nil {
			return fmt.Errorf("closing existing log file: %w", err)
		}
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	globalState.level = level
	globalState.formatter = formatter
	globalState.output = output
	globalState.file = file
	globalState.components = components
	globalState.initialized = true

	for component, logger := range globalState.loggers {
		*logger = *createLogger(component)
	}
	return nil
}

// Get returns a logger for the given component.
// If the component has a level override in the config, it uses that level.
// Otherwise, it uses the default level.
func Get(component string) *Logger {
	globalState.mu.RLock()
	if logger, ok := globalState.loggers[component]; ok {
		globalState.mu.RUnlock()
		return logger
	}
	globalState.mu.RUnlock()

	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if logger, ok := globalState.loggers[component]; ok {
		return logger
	}

	logger := createLogger(component)
	globalState.loggers[component] = logger
	return logger
}

// createLogger must be called with globalState.mu held.
func createLogger(component string) *Logger {
	level := globalState.level
	if compLevel, ok := globalState.components[component]; ok {
		level = compLevel
	}

	if !globalState.initialized {
		return &Logger{
			console: log.NewWithOptions(io.Discard, log.Options{
				Level:  level.toCharmLevel(),
				Prefix: component,
			}),
			component: component,
		}
	}

	logger := &Logger{
		console: log.NewWithOptions(globalState.output, log.Options{
			Level:           level.toCharmLevel(),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          component,
			Formatter:       globalState.formatter,
		}),
		component: component,
	}

	if globalState.file != nil {
		logger.file = log.NewWithOptions(globalState.file, log.Options{
			Level:           level.toCharmLevel(),
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          component,
			Formatter:       globalState.formatter,
		})
	}
	return logger
}

// Close closes the log file, if any, and returns loggers to the silent
// pre-Init state.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if !globalState.initialized {
		return nil
	}

	var err error
	if globalState.file != nil {
		if cerr := globalState.file.Close(); cerr != nil {
			err = fmt.Errorf("closing log file: %w", cerr)
		}
		globalState.file = nil
	}

	globalState.initialized = false
	globalState.components = make(map[string]Level)
	for component, logger := range globalState.loggers {
		*logger = *createLogger(component)
	}
	return err
}

// DefaultLogPath returns the suggested log file path,
// $XDG_STATE_HOME/sift/sift.log.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "sift", "sift.log")
}
