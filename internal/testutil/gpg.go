package testutil

import (
	"os"
	"os/exec"
	"testing"
)

// RequireGPG aborts the calling test when gpg is not present on PATH.
func RequireGPG(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("gpg")
	if err != nil {
		t.Skip("skipping: gpg binary not available")
	}
	return path
}

// TempHome creates an empty, private GnuPG home directory. It lives under /tmp
// because the agent socket path must stay short. Any agent started for the
// home is stopped during cleanup.
func TempHome(t *testing.T) string {
	t.Helper()
	RequireGPG(t)
	home, err := os.MkdirTemp("/tmp", "keyring-tui-*")
	if err != nil {
		t.Fatalf("failed to create gpg home: %v", err)
	}
	if err := os.Chmod(home, 0o700); err != nil {
		t.Fatalf("failed to restrict gpg home: %v", err)
	}
	t.Cleanup(func() {
		if gpgconf, err := exec.LookPath("gpgconf"); err == nil {
			_ = exec.Command(gpgconf, "--homedir", home, "--kill", "all").Run() //nolint:gosec
		}
		_ = os.RemoveAll(home)
	})
	return home
}
