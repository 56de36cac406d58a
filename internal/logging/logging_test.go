package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func configureTemp(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	Configure(path)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := configureTemp(t)
	SetTraceEnabled(false)
	Trace("app.start", map[string]interface{}{"pid": 1})
	Close()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, got %v", err)
	}
}

func TestTraceWritesJSON(t *testing.T) {
	path := configureTemp(t)
	SetTraceEnabled(true)
	Trace("command.run", map[string]interface{}{"label": "show help"})
	out := readLog(t, path)
	if !strings.Contains(out, `"event":"command.run"`) || !strings.Contains(out, `"label":"show help"`) {
		t.Fatalf("unexpected trace output %q", out)
	}
}

func TestErrorAndLeveledHelpers(t *testing.T) {
	path := configureTemp(t)
	Error(errors.New("boom"))
	Error(nil)
	Infof("loaded %d keys", 3)
	Warnf("slow %s", "engine")
	out := readLog(t, path)
	for _, want := range []string{"boom", "loaded 3 keys", "slow engine"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log, got %q", want, out)
		}
	}
}
