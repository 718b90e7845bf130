package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be a no-op when no level is configured")
	}
}

func TestInitializeFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	defer SetLogger(nil)

	core := GetLogger().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDomainHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogPhase(7, "overlaying")
	LogTokenChange(2, "59", "00")
	LogCommand(7, "increment", zap.Int("amount", 1))
	LogVerdict("token_changing", 2, true)

	if logs.Len() != 4 {
		t.Fatalf("got %d entries, want 4", logs.Len())
	}
	phase := logs.FilterMessage("Edit session phase").All()
	if len(phase) != 1 || phase[0].ContextMap()["phase"] != "overlaying" {
		t.Errorf("unexpected phase entry: %+v", phase)
	}
	change := logs.FilterMessage("Token changed").All()
	if len(change) != 1 || change[0].ContextMap()["new"] != "00" {
		t.Errorf("unexpected token change entry: %+v", change)
	}
	cmd := logs.FilterMessage("Command received").All()
	if len(cmd) != 1 || cmd[0].ContextMap()["amount"] != int64(1) {
		t.Errorf("unexpected command entry: %+v", cmd)
	}
}

func TestInitializeJSONFormat(t *testing.T) {
	t.Setenv(LogFormatEnvVar, "json")
	if err := Initialize("debug"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer SetLogger(nil)

	if !GetLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled")
	}
}

func TestWebSocketMessageTypeNames(t *testing.T) {
	tests := map[int]string{1: "text", 2: "binary", 8: "close", 9: "ping", 10: "pong", 3: "unknown(3)"}
	for in, want := range tests {
		if got := wsMessageTypeName(in); got != want {
			t.Errorf("wsMessageTypeName(%d) = %q, want %q", in, got, want)
		}
	}
}
