package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a config-file level string to a LogLevel. Unknown
// strings fall back to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogEntry is the structured log entry passed to the TUI log overlay.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

var (
	defaultLogger *slog.Logger
	tuiLogChannel chan LogEntry
	isTuiMode     bool
	filterLevel   LogLevel
)

const tuiChannelBufferSize = 2048

// InitForTUI initializes the logging system for TUI mode. Entries at or
// above level are forwarded over the returned channel; the TUI drains it
// into its log overlay. An optional file sink receives everything as well.
func InitForTUI(level LogLevel, logFile string) <-chan LogEntry {
	isTuiMode = true
	filterLevel = level
	tuiLogChannel = make(chan LogEntry, tuiChannelBufferSize)

	sink := io.Discard
	if logFile != "" {
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			sink = f
		}
	}
	defaultLogger = slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level.SlogLevel()}))
	slog.SetDefault(defaultLogger)
	return tuiLogChannel
}

// InitForCLI initializes the logging system for plain CLI output.
func InitForCLI(level LogLevel, output io.Writer) {
	isTuiMode = false
	filterLevel = level
	defaultLogger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level.SlogLevel()}))
	slog.SetDefault(defaultLogger)
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}
	now := time.Now()

	if defaultLogger != nil {
		attrs := []slog.Attr{slog.String("subsystem", subsystem)}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		defaultLogger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
	}

	if !isTuiMode || tuiLogChannel == nil || level < filterLevel {
		return
	}
	entry := LogEntry{
		Timestamp: now,
		Level:     level,
		Subsystem: subsystem,
		Message:   msg,
		Err:       err,
	}
	// Never block a data-plane goroutine on a slow TUI: drop when the
	// channel buffer is full.
	select {
	case tuiLogChannel <- entry:
	default:
	}
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}

// CloseTUIChannel closes the TUI log channel. Called on shutdown.
func CloseTUIChannel() {
	if tuiLogChannel != nil {
		close(tuiLogChannel)
		tuiLogChannel = nil
	}
}
