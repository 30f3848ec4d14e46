package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestZapLoggerWritesJSONToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	var l ILogger = NewZapLogger(logPath, true)
	l.Info("test_module", "hello from test", map[string]interface{}{"key": "value"})
	l.Warn("test_module", "warning line", nil)
	l.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, `"message":"hello from test"`) {
		t.Errorf("log file missing info message, got: %s", content)
	}
	if !strings.Contains(content, `"module":"test_module"`) {
		t.Errorf("log file missing module field, got: %s", content)
	}
	if !strings.Contains(content, `"level":"WARN"`) {
		t.Errorf("log file missing warn level, got: %s", content)
	}
}

func TestZapLoggerNilDetails(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	l := NewZapLogger(logPath, true)
	// nil details must not panic at any level
	l.Debug("m", "d", nil)
	l.Info("m", "i", nil)
	l.Warn("m", "w", nil)
	l.Error("m", "e", nil)
	l.Error("m", "e2", map[string]interface{}{"error": "boom"})
	l.Sync()
}
