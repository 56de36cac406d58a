package keyring

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNoFiles is returned by Import when no paths are supplied.
var ErrNoFiles = errors.New("no files given")

// ExportOptions carries the user-tunable export settings.
type ExportOptions struct {
	Armor     bool
	OutputDir string
}

// document is the on-disk representation used by Store.
type document struct {
	Keys []Key `yaml:"keys"`
}

// Store is an in-memory keyring that reads and writes YAML documents. It backs
// the --keyring-file mode and the tests.
type Store struct {
	mu      sync.RWMutex
	keys    []Key
	sent    []string
	program string
	path    string

	// Keyserver is reported by Send; an empty value makes Send fail.
	Keyserver string
}

// NewStore returns a store holding copies of keys.
func NewStore(keys ...Key) *Store {
	s := &Store{program: "gpg", Keyserver: "hkps://keys.openpgp.org"}
	for _, key := range keys {
		s.keys = append(s.keys, key.Clone())
	}
	return s
}

// LoadFile reads a YAML keyring document.
func LoadFile(path string) (*Store, error) {
	keys, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	s := NewStore(keys...)
	s.path = path
	return s, nil
}

// SetProgram sets the binary used for delegated operations.
func (s *Store) SetProgram(program string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(program) != "" {
		s.program = program
	}
}

// ListAll returns value copies of every key grouped by category. Secret keys
// also appear in the public category, matching how keyrings list them.
func (s *Store) ListAll() (map[Category][]Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAll(), nil
}

func (s *Store) listAll() map[Category][]Key {
	out := map[Category][]Key{Public: {}, Secret: {}}
	for _, key := range s.keys {
		pub := key.Clone()
		pub.Category = Public
		if key.Category == Secret {
			out[Secret] = append(out[Secret], key.Clone())
		}
		if !containsKey(out[Public], pub) {
			out[Public] = append(out[Public], pub)
		}
	}
	return out
}

// Import merges the keys found in the given YAML documents and returns how
// many keys were added or updated.
func (s *Store) Import(paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, ErrNoFiles
	}
	var imported []Key
	for _, path := range paths {
		keys, err := readDocument(path)
		if err != nil {
			return 0, err
		}
		imported = append(imported, keys...)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range imported {
		s.upsert(key)
	}
	return len(imported), nil
}

// Export writes the matching keys of a category to the output directory and
// returns the written path.
func (s *Store) Export(category Category, patterns []string, opts ExportOptions) (string, error) {
	data, err := s.ExportedBytes(category, patterns, opts)
	if err != nil {
		return "", err
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	name := "all"
	if len(patterns) > 0 {
		name = strings.Join(patterns, "_")
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", category, sanitizeName(name)))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportedBytes returns the YAML document for the matching keys.
func (s *Store) ExportedBytes(category Category, patterns []string, opts ExportOptions) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	selected := s.match(category, patterns)
	if len(patterns) > 0 && len(selected) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, strings.Join(patterns, " "))
	}
	data, err := yaml.Marshal(document{Keys: selected})
	if err != nil {
		return nil, fmt.Errorf("encode keys: %w", err)
	}
	if opts.Armor {
		return armor(data), nil
	}
	return data, nil
}

// Delete removes a key. Deleting a secret key keeps its public part; deleting
// a public key that still has a secret part fails.
func (s *Store) Delete(category Category, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, key := range s.keys {
		if !key.Matches(id) {
			continue
		}
		switch {
		case category == Secret && key.Category != Secret:
			continue
		case category == Secret:
			s.keys[i].Category = Public
		case key.Category == Secret:
			return fmt.Errorf("secret key present for %s, delete it first", id)
		default:
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrKeyNotFound, id)
}

// Send records the key as sent to the keyserver.
func (s *Store) Send(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Keyserver == "" {
		return "", errors.New("no keyserver available")
	}
	for _, key := range s.keys {
		if key.Matches(id) {
			s.sent = append(s.sent, key.primary().KeyID)
			return key.primary().KeyID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrKeyNotFound, id)
}

// Sent lists the key ids passed to Send.
func (s *Store) Sent() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.sent...)
}

// Program returns the binary and base arguments used for delegated operations.
func (s *Store) Program() (string, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.program, nil
}

// Info describes the store for the help view.
func (s *Store) Info() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	source := s.path
	if source == "" {
		source = "(memory)"
	}
	secrets := 0
	for _, key := range s.keys {
		if key.Category == Secret {
			secrets++
		}
	}
	return fmt.Sprintf("keyring file: %s\nkeys: %d (%d secret)\nkeyserver: %s", source, len(s.keys), secrets, s.Keyserver), nil
}

func (s *Store) match(category Category, patterns []string) []Key {
	all := s.listAll()
	selected := make([]Key, 0, len(all[category]))
	for _, key := range all[category] {
		if len(patterns) == 0 {
			selected = append(selected, key)
			continue
		}
		for _, pattern := range patterns {
			if key.Matches(pattern) {
				selected = append(selected, key)
				break
			}
		}
	}
	return selected
}

func (s *Store) upsert(key Key) {
	for i, existing := range s.keys {
		if existing.Fingerprint() != "" && existing.Fingerprint() == key.Fingerprint() {
			if existing.Category == Secret {
				key.Category = Secret
			}
			s.keys[i] = key.Clone()
			return
		}
	}
	s.keys = append(s.keys, key.Clone())
}

func containsKey(keys []Key, key Key) bool {
	for _, k := range keys {
		if k.Fingerprint() == key.Fingerprint() {
			return true
		}
	}
	return false
}

func readDocument(path string) ([]Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = dearmor(data)
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc.Keys, nil
}

const (
	armorHeader = "-----BEGIN KEYRING BLOCK-----\n"
	armorFooter = "-----END KEYRING BLOCK-----\n"
)

func armor(data []byte) []byte {
	return []byte(armorHeader + string(data) + armorFooter)
}

func dearmor(data []byte) []byte {
	text := string(data)
	if !strings.HasPrefix(text, armorHeader) {
		return data
	}
	text = strings.TrimPrefix(text, armorHeader)
	text = strings.TrimSuffix(text, armorFooter)
	return []byte(text)
}

func sanitizeName(name string) string {
	replacer := strings.NewReplacer("/", "-", " ", "-", "<", "", ">", "", "@", "-at-")
	return replacer.Replace(name)
}
