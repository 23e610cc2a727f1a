package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })
	return logs
}

func TestLogFunctions(t *testing.T) {
	t.Run("info carries action and details", func(t *testing.T) {
		logs := observe(t, zapcore.InfoLevel)
		Info("directory_loaded", map[string]interface{}{"count": 3})

		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Message != "directory_loaded" {
			t.Errorf("expected action 'directory_loaded', got %q", entries[0].Message)
		}
		if got := entries[0].ContextMap()["count"]; got != int64(3) {
			t.Errorf("expected count 3, got %v", got)
		}
	})

	t.Run("error includes error text and user", func(t *testing.T) {
		logs := observe(t, zapcore.InfoLevel)
		ErrorWithUser("u1", "role_update_failed", errors.New("boom"), nil)

		entry := logs.All()[0]
		ctx := entry.ContextMap()
		if ctx["error"] != "boom" {
			t.Errorf("expected error 'boom', got %v", ctx["error"])
		}
		if ctx["user_id"] != "u1" {
			t.Errorf("expected user_id 'u1', got %v", ctx["user_id"])
		}
		if entry.Level != zapcore.ErrorLevel {
			t.Errorf("expected error level, got %s", entry.Level)
		}
	})

	t.Run("respects level threshold", func(t *testing.T) {
		logs := observe(t, zapcore.WarnLevel)
		Info("ignored", nil)
		Debug("ignored", nil)
		Warn("kept", nil)
		if logs.Len() != 1 {
			t.Fatalf("expected 1 entry, got %d", logs.Len())
		}
	})

	t.Run("nil logger is a no-op", func(t *testing.T) {
		Set(nil)
		Info("nothing", nil)
	})
}

func TestNew(t *testing.T) {
	t.Run("writes JSON to a file sink", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")
		l, err := New(Config{Level: "debug", Output: path})
		if err != nil {
			t.Fatalf("New() returned error: %v", err)
		}
		Set(l)
		t.Cleanup(func() { Set(nil) })

		Info("hello", map[string]interface{}{"k": "v"})
		Sync()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed reading log file: %v", err)
		}
		if !strings.Contains(string(data), `"action":"hello"`) {
			t.Errorf("expected action key in output, got %s", data)
		}
	})

	t.Run("falls back to info on bad level", func(t *testing.T) {
		l, err := New(Config{Level: "loud", Output: filepath.Join(t.TempDir(), "x.log")})
		if err != nil {
			t.Fatalf("New() returned error: %v", err)
		}
		if !l.Core().Enabled(zapcore.InfoLevel) || l.Core().Enabled(zapcore.DebugLevel) {
			t.Error("expected info level")
		}
	})
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a uuid, got %q", id)
	}
}
