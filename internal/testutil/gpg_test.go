package testutil

import (
	"os"
	"testing"
)

func TestTempHomeIsPrivate(t *testing.T) {
	home := TempHome(t)
	info, err := os.Stat(home)
	if err != nil {
		t.Fatalf("stat home: %v", err)
	}
	if !info.IsDir() || info.Mode().Perm() != 0o700 {
		t.Fatalf("expected private directory, got %v", info.Mode())
	}
}
