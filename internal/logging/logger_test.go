package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func readEntries(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	t.Run("creates debate.log in the directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "output")

		logger, err := NewLogger(dir, LevelDebug, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		logPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			t.Errorf("log file was not created at %s", logPath)
		}
	})

	t.Run("requires a directory", func(t *testing.T) {
		if _, err := NewLogger("", LevelInfo, DefaultRotationConfig()); err == nil {
			t.Error("NewLogger(\"\") should fail")
		}
	})
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{LevelDebug, 4},
		{"info", 3},
		{"Warn", 2},
		{LevelError, 1},
		{"invalid", 3},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWriterLogger(&buf, tt.level)

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")
			logger.Error("error message")

			if got := len(readEntries(t, buf.Bytes())); got != tt.want {
				t.Errorf("level %s logged %d entries, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriterLogger(&buf, LevelInfo)

	segLog := root.WithRun("run-1").WithSegment("opposition_rebuttal").With("provider", "openai")
	segLog.Info("speech voiced", "bytes", 1024)
	root.Info("root entry")

	entries := readEntries(t, buf.Bytes())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first["run_id"] != "run-1" {
		t.Errorf("run_id = %v", first["run_id"])
	}
	if first["segment"] != "opposition_rebuttal" {
		t.Errorf("segment = %v", first["segment"])
	}
	if first["provider"] != "openai" {
		t.Errorf("provider = %v", first["provider"])
	}
	if first["bytes"] != float64(1024) {
		t.Errorf("bytes = %v", first["bytes"])
	}

	// Children never mutate their parent
	if _, ok := entries[1]["run_id"]; ok {
		t.Error("root logger should not carry run_id")
	}
}

func TestWith_IgnoresMalformedArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelInfo)

	if logger.With() != logger {
		t.Error("With() without args should return the same logger")
	}

	logger.With(42, "value", "ok", true).Info("msg")
	entries := readEntries(t, buf.Bytes())
	if entries[0]["ok"] != true {
		t.Errorf("entry = %v, want ok=true", entries[0])
	}
}

func TestLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelInfo, DefaultRotationConfig())
	if err != nil {
		t.Fatal(err)
	}

	logger.WithRun("abc").Info("debate started", "motion", "m")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Closing twice is safe
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	entries := readEntries(t, data)
	if len(entries) != 1 || entries[0]["msg"] != "debate started" {
		t.Errorf("entries = %v", entries)
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	logger := NewWriterLogger(&lockedWriter{mu: &mu, w: &buf}, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.WithSegment("s").Info("entry", "n", n)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if got := len(readEntries(t, buf.Bytes())); got != 20 {
		t.Errorf("got %d entries, want 20", got)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.WithRun("x").Error("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
