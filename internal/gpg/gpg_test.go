package gpg

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/keyring-tui/internal/keyring"
)

const publicListing = `tru::1:1700000000:0:3:1:5
pub:u:255:22:0123456789ABCDEF:1614816000:::u:::scSC:::::ed25519:::0:
fpr:::::::::AAAABBBBCCCCDDDDEEEEFFFF0123456789ABCDEF:
uid:u::::1614816000::HASH::Alice \x3a Example <alice@example.org>::::::::::0:
sig:::22:0123456789ABCDEF:1614816000::::Alice \x3a Example <alice@example.org>:13x::::::8:
rev:::1:FEDCBA9876543210:1620000000::::Bob <bob@example.org>:30x::::::8:
sub:e:255:18:1111456789ABCDEF:1614816000:1700000000:::::e:::::cv25519::
fpr:::::::::1111BBBBCCCCDDDDEEEEFFFF1111456789ABCDEF:
sig:::22:0123456789ABCDEF:1614816000::::::18x::::::8:
pub:r:3072:1:FEDCBA9876543210:1500000000:::-:::scESC::::::::0:
fpr:::::::::9999BBBBCCCCDDDDEEEEFFFFFEDCBA9876543210:
uid:r::::1500000000::HASH::Bob <bob@example.org>::::::::::0:
`

type call struct {
	program string
	args    []string
}

func withStubGPG(t *testing.T, fn func(args []string) ([]byte, []byte, error)) *[]call {
	t.Helper()
	calls := &[]call{}
	prev := runCommand
	runCommand = func(program string, args []string) ([]byte, []byte, error) {
		*calls = append(*calls, call{program: program, args: append([]string(nil), args...)})
		return fn(args)
	}
	t.Cleanup(func() { runCommand = prev })
	return calls
}

func TestParseColons(t *testing.T) {
	keys := parseColons([]byte(publicListing), keyring.Public)
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	alice := keys[0]
	if alice.ID() != "0x0123456789ABCDEF" || alice.Fingerprint() != "AAAABBBBCCCCDDDDEEEEFFFF0123456789ABCDEF" {
		t.Fatalf("unexpected primary key %+v", alice.Subkeys[0])
	}
	if alice.UserID() != "Alice : Example <alice@example.org>" {
		t.Fatalf("expected unescaped user id, got %q", alice.UserID())
	}
	if len(alice.Subkeys) != 2 || alice.Subkeys[1].Usage != "e" || alice.Subkeys[1].Algorithm != "cv25519" || !alice.Subkeys[1].Expired {
		t.Fatalf("unexpected subkey %+v", alice.Subkeys)
	}
	if alice.Subkeys[1].Fingerprint != "1111BBBBCCCCDDDDEEEEFFFF1111456789ABCDEF" {
		t.Fatalf("unexpected subkey fingerprint %q", alice.Subkeys[1].Fingerprint)
	}
	sigs := alice.UserIDs[0].Signatures
	if len(sigs) != 2 || sigs[1].Class != "30x" {
		t.Fatalf("expected binding signature to be skipped, got %+v", sigs)
	}
	bob := keys[1]
	if !bob.Revoked() || !bob.UserIDs[0].Revoked || bob.Subkeys[0].Algorithm != "rsa" || bob.Subkeys[0].Usage != "sc" {
		t.Fatalf("unexpected revoked key %+v", bob)
	}
	if got := bob.SubkeyInfo(true); got[0] != "[sc--] rsa3072/FEDCBA9876543210" {
		t.Fatalf("unexpected projection %q", got[0])
	}
}

func TestListAll(t *testing.T) {
	calls := withStubGPG(t, func(args []string) ([]byte, []byte, error) {
		if args[len(args)-1] == "--list-secret-keys" {
			return []byte(strings.Replace(strings.SplitN(publicListing, "pub:r", 2)[0], "pub:", "sec:", 1)), nil, nil
		}
		return []byte(publicListing), nil, nil
	})
	client := New(Options{Homedir: "/tmp/gnupg"})
	all, err := client.ListAll()
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all[keyring.Public]) != 2 || len(all[keyring.Secret]) != 1 {
		t.Fatalf("unexpected listing sizes %d/%d", len(all[keyring.Public]), len(all[keyring.Secret]))
	}
	if all[keyring.Secret][0].Category != keyring.Secret {
		t.Fatalf("expected secret category")
	}
	want := []string{"--homedir", "/tmp/gnupg", "--batch", "--with-colons", "--fixed-list-mode", "--list-sigs"}
	if (*calls)[0].program != "gpg" || !reflect.DeepEqual((*calls)[0].args, want) {
		t.Fatalf("unexpected invocation %+v", (*calls)[0])
	}
}

func TestImportCountsProcessedKeys(t *testing.T) {
	withStubGPG(t, func(args []string) ([]byte, []byte, error) {
		return []byte("[GNUPG:] IMPORT_OK 1 AAAA\n[GNUPG:] IMPORT_RES 3 0 2 0 1 0 0 0 0 0 0 0 0 0\n"), nil, nil
	})
	count, err := New(Options{}).Import([]string{"a.asc"})
	if err != nil || count != 3 {
		t.Fatalf("Import = %d, %v", count, err)
	}
	if _, err := New(Options{}).Import(nil); !errors.Is(err, keyring.ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
}

func TestErrorsCarryStderr(t *testing.T) {
	withStubGPG(t, func(args []string) ([]byte, []byte, error) {
		return nil, []byte("gpg: keyserver send failed\ngpg: keyserver send failed: No keyserver available\n"), errors.New("exit status 2")
	})
	_, err := New(Options{}).Send("0x0123456789ABCDEF")
	if err == nil || err.Error() != "send: exit status 2: gpg: keyserver send failed: No keyserver available" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestExportWritesFile(t *testing.T) {
	calls := withStubGPG(t, func(args []string) ([]byte, []byte, error) {
		return []byte("-----BEGIN PGP PUBLIC KEY BLOCK-----\n"), nil, nil
	})
	dir := t.TempDir()
	path, err := New(Options{}).Export(keyring.Secret, []string{"0x0123456789ABCDEF"}, keyring.ExportOptions{Armor: true, OutputDir: dir})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if path != filepath.Join(dir, "sec_0x0123456789ABCDEF.asc") {
		t.Fatalf("unexpected path %q", path)
	}
	if data, _ := os.ReadFile(path); !strings.HasPrefix(string(data), "-----BEGIN PGP") {
		t.Fatalf("unexpected file content %q", data)
	}
	want := []string{"--batch", "--armor", "--export-secret-keys", "0x0123456789ABCDEF"}
	if !reflect.DeepEqual((*calls)[0].args, want) {
		t.Fatalf("unexpected args %v", (*calls)[0].args)
	}
}

func TestExportedBytesEmptyOutput(t *testing.T) {
	withStubGPG(t, func(args []string) ([]byte, []byte, error) { return nil, nil, nil })
	if _, err := New(Options{}).ExportedBytes(keyring.Public, []string{"0xDEAD"}, keyring.ExportOptions{}); !errors.Is(err, keyring.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestDeleteResolvesFingerprint(t *testing.T) {
	calls := withStubGPG(t, func(args []string) ([]byte, []byte, error) {
		if strings.HasPrefix(args[len(args)-2], "--list") {
			return []byte(publicListing), nil, nil
		}
		return nil, nil, nil
	})
	if err := New(Options{}).Delete(keyring.Secret, "0x0123456789ABCDEF"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	want := []string{"--batch", "--yes", "--delete-secret-key", "AAAABBBBCCCCDDDDEEEEFFFF0123456789ABCDEF"}
	if len(*calls) != 2 || !reflect.DeepEqual((*calls)[1].args, want) {
		t.Fatalf("unexpected calls %+v", *calls)
	}
}

func TestInfo(t *testing.T) {
	withStubGPG(t, func(args []string) ([]byte, []byte, error) {
		return []byte("gpg (GnuPG) 2.4.5\nlibgcrypt 1.10.3\nHome: /home/alice/.gnupg\nSupported algorithms:\n"), nil, nil
	})
	info, err := New(Options{}).Info()
	if err != nil || info != "gpg (GnuPG) 2.4.5\nhome: /home/alice/.gnupg" {
		t.Fatalf("Info = %q, %v", info, err)
	}
}

func TestProgramCarriesBaseArgs(t *testing.T) {
	program, args := New(Options{Program: "gpg2", DefaultKey: "0xABCD"}).Program()
	if program != "gpg2" || !reflect.DeepEqual(args, []string{"--default-key", "0xABCD"}) {
		t.Fatalf("Program = %q %v", program, args)
	}
}
