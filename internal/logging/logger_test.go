package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetOutputWritesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, log.DebugLevel)

	Info("trends loaded", "count", 3)
	Debug("detail")

	out := buf.String()
	if !strings.Contains(out, "trends loaded") || !strings.Contains(out, "count=3") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "detail") {
		t.Errorf("debug line missing: %q", out)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, log.WarnLevel)

	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn missing: %q", out)
	}
}

func TestInitCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, log.InfoLevel); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Error("boom", "err", "x")
	Close()

	matches, _ := filepath.Glob(filepath.Join(dir, "logs", "siadash-*.log"))
	if len(matches) != 1 {
		t.Fatalf("expected one log file, got %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "boom") {
		t.Errorf("log file missing entry: %q", data)
	}
}
