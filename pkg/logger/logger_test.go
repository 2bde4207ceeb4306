package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	if err := Init(Options{Level: "debug", Output: "console"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("cache miss", "namespace", "CloudinaryTypes", "key", "all")
	Info("cache refreshed", "namespace", "CloudinaryTypes")
	Warn("background refresh failed", "namespace", "CloudinaryImages")
	Error("upstream failure", "error", "boom")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init(Options{Level: "verbose", Output: "console"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInitRequiresFilePath(t *testing.T) {
	if err := Init(Options{Level: "info", Output: "file"}); err == nil {
		t.Fatal("expected error when file output has no path")
	}
}

func TestSetLevel(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "level.log")

	if err := Init(Options{Level: "info", Output: "file", FilePath: logPath}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}

	Info("should not appear")
	Error("should appear")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if strings.Contains(string(content), "should not appear") {
		t.Fatalf("info message written after SetLevel(error)")
	}
	if !strings.Contains(string(content), "should appear") {
		t.Fatalf("error message missing")
	}
}

func TestJSONOutputMasksSecrets(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.json")

	opts := Options{
		Level:    "info",
		Output:   "file",
		Format:   "json",
		FilePath: logPath,
	}
	if err := Init(opts); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("cloudinary client configured", "cloud_name", "demo", "api_secret", "abcdefghijkl")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if !strings.Contains(string(content), `"msg":"cloudinary client configured"`) {
		t.Fatalf("JSON log does not contain expected message")
	}
	if !strings.Contains(string(content), `"cloud_name":"demo"`) {
		t.Fatalf("JSON log does not contain expected key-value pair")
	}
	if strings.Contains(string(content), "abcdefghijkl") {
		t.Fatalf("api_secret leaked into log output")
	}
}

func TestBothOutput(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "nested", "both.log")

	opts := Options{
		Level:    "info",
		Output:   "both",
		Format:   "text",
		FilePath: logPath,
		Colorize: true,
	}
	if err := Init(opts); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("test message", "key", "value")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Log file was not created: %v", err)
	}
	if strings.Contains(string(content), colorReset) {
		t.Fatalf("file output must not be colorized")
	}
}

func TestInitDefault(t *testing.T) {
	mu.Lock()
	defaultLogger = nil
	mu.Unlock()

	Info("test default init")

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		t.Fatal("Default logger was not initialized")
	}
}

func BenchmarkLogger(b *testing.B) {
	if err := Init(Options{Level: "info", Output: "console"}); err != nil {
		b.Fatalf("Init failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Info("benchmark message", "key", "value", "count", i)
	}
}
