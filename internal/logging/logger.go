package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var logger *zap.Logger

const (
	// LogLevelEnvVar selects the log level. When unset or empty, logging is
	// silent. Valid values: "debug", "info", "warn", "error".
	LogLevelEnvVar = "MASKEDIT_LOG_LEVEL"

	// LogFormatEnvVar selects "console" (default) or "json" output.
	LogFormatEnvVar = "MASKEDIT_LOG_FORMAT"
)

// ParseLevel converts a level name to a zap level. "warning" is accepted
// and unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil || l > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return l
}

// Initialize builds the global logger at level, falling back to
// MASKEDIT_LOG_LEVEL. With neither set the logger is a no-op. Output goes
// to stderr so it never mixes with command output.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if strings.EqualFold(os.Getenv(LogFormatEnvVar), "json") {
		cfg.Encoding = "json"
	} else {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if term.IsTerminal(int(os.Stderr.Fd())) {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

// InitializeFromEnv initializes the logger from MASKEDIT_LOG_LEVEL.
func InitializeFromEnv() error {
	return Initialize("")
}

// SetLogger replaces the global logger. Used by tests to capture output.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogPhase logs an edit-session phase transition
func LogPhase(session uint64, phase string) {
	Debug("Edit session phase",
		zap.Uint64("session", session),
		zap.String("phase", phase),
	)
}

// LogCommand logs a host command entering the pipeline
func LogCommand(session uint64, kind string, fields ...zap.Field) {
	Debug("Command received",
		append([]zap.Field{zap.Uint64("session", session), zap.String("kind", kind)}, fields...)...,
	)
}

// LogTokenChange logs a committed token text change
func LogTokenChange(seq int, oldText, newText string) {
	Debug("Token changed",
		zap.Int("seq", seq),
		zap.String("old", oldText),
		zap.String("new", newText),
	)
}

// LogVerdict logs a hook decision on a proposed change
func LogVerdict(hook string, seq int, cancelled bool) {
	Debug("Hook verdict",
		zap.String("hook", hook),
		zap.Int("seq", seq),
		zap.Bool("cancelled", cancelled),
	)
}

// LogConnection logs a connection event
func LogConnection(remoteAddr string, event string) {
	Info("Connection event",
		zap.String("remote_addr", remoteAddr),
		zap.String("event", event),
	)
}

// LogWebSocketMessage logs a WebSocket message
func LogWebSocketMessage(remoteAddr string, direction string, messageType int, data []byte) {
	fields := []zap.Field{
		zap.String("remote_addr", remoteAddr),
		zap.String("direction", direction),
		zap.String("message_type", wsMessageTypeName(messageType)),
		zap.Int("length", len(data)),
	}

	if messageType == wsText {
		fields = append(fields, zap.String("content", string(data)))
	}

	Debug("WebSocket message", fields...)
}

// WebSocket opcodes (RFC 6455 section 11.8)
const (
	wsText   = 1
	wsBinary = 2
	wsClose  = 8
	wsPing   = 9
	wsPong   = 10
)

var wsOpcodeNames = map[int]string{
	wsText:   "text",
	wsBinary: "binary",
	wsClose:  "close",
	wsPing:   "ping",
	wsPong:   "pong",
}

func wsMessageTypeName(messageType int) string {
	if name, ok := wsOpcodeNames[messageType]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", messageType)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
