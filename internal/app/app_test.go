package app

import (
	"path/filepath"
	"testing"

	"github.com/atomicstack/keyring-tui/internal/gpg"
	"github.com/atomicstack/keyring-tui/internal/keyring"
)

func TestNewEngineDefaultsToGPG(t *testing.T) {
	engine, err := newEngine(Config{Program: "gpg2", Homedir: "/tmp/gnupg"})
	if err != nil {
		t.Fatalf("newEngine returned error: %v", err)
	}
	if _, ok := engine.(*gpg.Client); !ok {
		t.Fatalf("expected gpg client, got %T", engine)
	}
	program, args := engine.Program()
	if program != "gpg2" || len(args) != 2 || args[1] != "/tmp/gnupg" {
		t.Fatalf("unexpected program %q %v", program, args)
	}
}

func TestNewEngineLoadsKeyringFile(t *testing.T) {
	dir := t.TempDir()
	seed := keyring.NewStore(keyring.Key{
		Category: keyring.Public,
		Subkeys:  []keyring.Subkey{{KeyID: "0123456789ABCDEF", Usage: "sc"}},
	})
	path, err := seed.Export(keyring.Public, nil, keyring.ExportOptions{OutputDir: dir})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	engine, err := newEngine(Config{KeyringFile: path, Program: "true"})
	if err != nil {
		t.Fatalf("newEngine returned error: %v", err)
	}
	all, err := engine.ListAll()
	if err != nil || len(all[keyring.Public]) != 1 {
		t.Fatalf("unexpected keys %v, %v", all, err)
	}
	if program, _ := engine.Program(); program != "true" {
		t.Fatalf("expected program override, got %q", program)
	}
}

func TestNewEngineMissingFile(t *testing.T) {
	if _, err := newEngine(Config{KeyringFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing keyring file")
	}
}
