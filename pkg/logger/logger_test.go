package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_InfoFlattensAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(Options{Writer: buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Info("Downloaded sources", slog.String("path", "42-sources.tar.gz"), slog.Int("bytes", 10))

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "Downloaded sources") {
		t.Errorf("Info output incorrect: %s", out)
	}
	if !strings.Contains(out, "path=42-sources.tar.gz") || !strings.Contains(out, "bytes=10") {
		t.Errorf("attrs not flattened: %s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("colour codes written to a non-terminal: %q", out)
	}
}

func TestNew_ErrorIncludesError(t *testing.T) {
	buf := &bytes.Buffer{}
	l, _ := New(Options{Writer: buf})
	l.Error("Command failed", errors.New("boom"), slog.String("kind", "remote"))

	out := buf.String()
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "error=boom") || !strings.Contains(out, "kind=remote") {
		t.Errorf("Error output incorrect: %s", out)
	}
}

func TestNew_DebugOnlyWhenVerbose(t *testing.T) {
	if isDebug == "1" {
		t.Skip("DEBUG=1 forces debug output")
	}
	buf := &bytes.Buffer{}
	l, _ := New(Options{Writer: buf})
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Debug should not output when verbose=false, got: %s", buf.String())
	}

	buf.Reset()
	l, _ = New(Options{Writer: buf, Verbose: true})
	l.Debug("shown")
	if !strings.Contains(buf.String(), "DEBUG") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("Debug output incorrect when verbose=true: %s", buf.String())
	}
}

func TestNew_QuotesValuesWithSpaces(t *testing.T) {
	buf := &bytes.Buffer{}
	l, _ := New(Options{Writer: buf})
	l.Warn("Odd value", slog.String("query", "status == SUCCESS"))
	if !strings.Contains(buf.String(), `query="status == SUCCESS"`) {
		t.Errorf("value not quoted: %s", buf.String())
	}
}

func TestNew_WritesLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "pncctl.log")
	buf := &bytes.Buffer{}

	l, err := New(Options{Writer: buf, File: path, MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.With(slog.String("command", "get")).Info("to both")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "to both") || !strings.Contains(string(data), "command=get") {
		t.Errorf("unexpected log file content: %s", data)
	}
	if !strings.Contains(buf.String(), "to both") {
		t.Errorf("console did not receive record: %s", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing", errors.New("x"))
	if err := l.Close(); err != nil {
		t.Errorf("Close on console logger returned %v", err)
	}
}
