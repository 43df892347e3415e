package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	logger, err := New(Options{Verbose: true, OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("converting", zap.String("file", "a.cs"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"file":"a.cs"`) {
		t.Errorf("log = %s", data)
	}
}

func TestDefaultLevelHidesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	logger, err := New(Options{OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("log = %s", data)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) = nil")
	}
	l := Nop()
	if OrNop(l) != l {
		t.Error("OrNop replaced a non-nil logger")
	}
}
