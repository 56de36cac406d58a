// Package gpg adapts the gpg command line program to the engine interface used
// by the user interface. Listings are read with --with-colons; every other
// operation runs gpg in batch mode and reports its trimmed stderr on failure.
package gpg

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/keyring-tui/internal/keyring"
)

// Options configures a Client.
type Options struct {
	Program    string
	Homedir    string
	DefaultKey string
}

// Client runs gpg for each engine operation.
type Client struct {
	program    string
	homedir    string
	defaultKey string
}

// runCommand is replaced in tests.
var runCommand = func(program string, args []string) ([]byte, []byte, error) {
	cmd := exec.Command(program, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// New returns a client for the given options. An empty program defaults to gpg.
func New(opts Options) *Client {
	program := strings.TrimSpace(opts.Program)
	if program == "" {
		program = "gpg"
	}
	return &Client{
		program:    program,
		homedir:    strings.TrimSpace(opts.Homedir),
		defaultKey: strings.TrimSpace(opts.DefaultKey),
	}
}

// Program returns the binary and the base arguments every invocation carries.
func (c *Client) Program() (string, []string) {
	return c.program, c.baseArgs()
}

func (c *Client) baseArgs() []string {
	args := []string{}
	if c.homedir != "" {
		args = append(args, "--homedir", c.homedir)
	}
	if c.defaultKey != "" {
		args = append(args, "--default-key", c.defaultKey)
	}
	return args
}

func (c *Client) run(op string, args ...string) ([]byte, error) {
	full := append(c.baseArgs(), "--batch")
	full = append(full, args...)
	stdout, stderr, err := runCommand(c.program, full)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", op, err, lastLine(msg))
	}
	return stdout, nil
}

// ListAll lists public and secret keys.
func (c *Client) ListAll() (map[keyring.Category][]keyring.Key, error) {
	out := make(map[keyring.Category][]keyring.Key, 2)
	for _, category := range keyring.Categories() {
		listing := "--list-sigs"
		if category == keyring.Secret {
			listing = "--list-secret-keys"
		}
		stdout, err := c.run("list keys", "--with-colons", "--fixed-list-mode", listing)
		if err != nil {
			return nil, err
		}
		out[category] = parseColons(stdout, category)
	}
	return out, nil
}

// Import imports key files and returns the number of processed keys.
func (c *Client) Import(paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, keyring.ErrNoFiles
	}
	args := append([]string{"--status-fd", "1", "--import"}, paths...)
	stdout, err := c.run("import", args...)
	if err != nil {
		return 0, err
	}
	return importCount(stdout), nil
}

// Export writes the matching keys to the output directory.
func (c *Client) Export(category keyring.Category, patterns []string, opts keyring.ExportOptions) (string, error) {
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	ext := "pgp"
	if opts.Armor {
		ext = "asc"
	}
	name := "all"
	if len(patterns) > 0 {
		name = strings.Join(patterns, "_")
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", category, sanitizeName(name), ext))
	data, err := c.ExportedBytes(category, patterns, opts)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportedBytes returns the exported key material.
func (c *Client) ExportedBytes(category keyring.Category, patterns []string, opts keyring.ExportOptions) ([]byte, error) {
	args := []string{}
	if opts.Armor {
		args = append(args, "--armor")
	}
	if category == keyring.Secret {
		args = append(args, "--export-secret-keys")
	} else {
		args = append(args, "--export")
	}
	args = append(args, patterns...)
	stdout, err := c.run("export", args...)
	if err != nil {
		return nil, err
	}
	if len(stdout) == 0 {
		return nil, fmt.Errorf("%w: %s", keyring.ErrKeyNotFound, strings.Join(patterns, " "))
	}
	return stdout, nil
}

// Delete removes a key. Batch deletion requires the full fingerprint, so the
// id is resolved first.
func (c *Client) Delete(category keyring.Category, id string) error {
	fpr, err := c.fingerprint(category, id)
	if err != nil {
		return err
	}
	op := "--delete-key"
	if category == keyring.Secret {
		op = "--delete-secret-key"
	}
	_, err = c.run("delete", "--yes", op, fpr)
	return err
}

// Send uploads a key to the configured keyserver.
func (c *Client) Send(id string) (string, error) {
	if _, err := c.run("send", "--send-keys", id); err != nil {
		return "", err
	}
	return id, nil
}

// Info reports the gpg version and home directory.
func (c *Client) Info() (string, error) {
	stdout, err := c.run("version", "--version")
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimSpace(string(stdout)), "\n")
	info := []string{lines[0]}
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "Home:") {
			info = append(info, "home: "+strings.TrimSpace(strings.TrimPrefix(line, "Home:")))
		}
	}
	return strings.Join(info, "\n"), nil
}

func (c *Client) fingerprint(category keyring.Category, id string) (string, error) {
	listing := "--list-keys"
	if category == keyring.Secret {
		listing = "--list-secret-keys"
	}
	stdout, err := c.run("list keys", "--with-colons", "--fixed-list-mode", listing, id)
	if err != nil {
		return "", err
	}
	keys := parseColons(stdout, category)
	if len(keys) == 0 || keys[0].Fingerprint() == "" {
		return "", fmt.Errorf("%w: %s", keyring.ErrKeyNotFound, id)
	}
	return keys[0].Fingerprint(), nil
}

// importCount reads the processed key count from the IMPORT_RES status line.
func importCount(status []byte) int {
	scanner := bufio.NewScanner(bytes.NewReader(status))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[0] != "[GNUPG:]" || fields[1] != "IMPORT_RES" {
			continue
		}
		count, err := strconv.Atoi(fields[2])
		if err == nil {
			return count
		}
	}
	return 0
}

func lastLine(text string) string {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return strings.TrimSpace(text[i+1:])
	}
	return text
}

func sanitizeName(name string) string {
	replacer := strings.NewReplacer("/", "-", " ", "-", "<", "", ">", "", "@", "-at-")
	return replacer.Replace(name)
}
