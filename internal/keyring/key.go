// Package keyring holds the key records shown by the interface and the
// projection of each record into its two field groups: the key/subkey group
// and the user group.
package keyring

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/keyring-tui/internal/format/row"
)

// ErrKeyNotFound is returned when no key matches a requested identifier.
var ErrKeyNotFound = errors.New("key not found")

// Category partitions the keyring.
type Category int

const (
	Public Category = iota
	Secret
)

// Categories lists every category in tab order.
func Categories() []Category {
	return []Category{Public, Secret}
}

func (c Category) String() string {
	if c == Secret {
		return "sec"
	}
	return "pub"
}

// MarshalText encodes the category as its short name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory accepts the short and long category names.
func ParseCategory(value string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pub", "public":
		return Public, nil
	case "sec", "secret":
		return Secret, nil
	}
	return Public, fmt.Errorf("invalid key type: %q", value)
}

// Detail controls how much of a key is projected.
type Detail int

const (
	DetailMinimum Detail = iota
	DetailStandard
	DetailFull
)

func (d Detail) String() string {
	switch d {
	case DetailStandard:
		return "standard"
	case DetailFull:
		return "full"
	default:
		return "minimum"
	}
}

// Increase returns the next detail level, saturating at DetailFull.
func (d Detail) Increase() Detail {
	if d >= DetailFull {
		return DetailFull
	}
	if d < DetailMinimum {
		return DetailMinimum
	}
	return d + 1
}

// ParseDetail accepts level names, their abbreviations and the 1-based ordinal.
func ParseDetail(value string) (Detail, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "minimum", "min", "1":
		return DetailMinimum, nil
	case "standard", "std", "2":
		return DetailStandard, nil
	case "full", "max", "3":
		return DetailFull, nil
	}
	return DetailMinimum, fmt.Errorf("invalid detail level: %q", value)
}

// Subkey describes the primary key or one of its subkeys.
type Subkey struct {
	KeyID       string    `yaml:"keyid"`
	Fingerprint string    `yaml:"fingerprint"`
	Algorithm   string    `yaml:"algorithm"`
	Length      int       `yaml:"length,omitempty"`
	Usage       string    `yaml:"usage"`
	Created     time.Time `yaml:"created"`
	Expires     time.Time `yaml:"expires,omitempty"`
	Revoked     bool      `yaml:"revoked,omitempty"`
	Expired     bool      `yaml:"expired,omitempty"`
}

// Signature is a certification on a user id.
type Signature struct {
	KeyID   string    `yaml:"keyid"`
	UserID  string    `yaml:"uid,omitempty"`
	Created time.Time `yaml:"created"`
	Class   string    `yaml:"class,omitempty"`
}

// UserID is a user id packet with its validity and certifications.
type UserID struct {
	ID         string      `yaml:"id"`
	Validity   string      `yaml:"validity,omitempty"`
	Revoked    bool        `yaml:"revoked,omitempty"`
	Signatures []Signature `yaml:"signatures,omitempty"`
}

// Key is one entry of the keyring. Subkeys[0] is the primary key.
type Key struct {
	Category Category `yaml:"type"`
	Subkeys  []Subkey `yaml:"subkeys"`
	UserIDs  []UserID `yaml:"uids,omitempty"`
	Detail   Detail   `yaml:"-"`
}

func (k *Key) primary() Subkey {
	if len(k.Subkeys) == 0 {
		return Subkey{}
	}
	return k.Subkeys[0]
}

// ID returns the long key id of the primary key in 0x notation.
func (k *Key) ID() string {
	id := k.primary().KeyID
	if id == "" {
		return ""
	}
	return "0x" + id
}

// Fingerprint returns the fingerprint of the primary key.
func (k *Key) Fingerprint() string {
	return k.primary().Fingerprint
}

// UserID returns the primary user id, or an empty string.
func (k *Key) UserID() string {
	if len(k.UserIDs) == 0 {
		return ""
	}
	return k.UserIDs[0].ID
}

// Revoked reports whether the primary key is revoked.
func (k *Key) Revoked() bool {
	return k.primary().Revoked
}

// Matches reports whether pattern identifies the key: a key id (with or
// without 0x), a fingerprint suffix, or a case-insensitive user id substring.
func (k *Key) Matches(pattern string) bool {
	p := strings.TrimPrefix(strings.TrimSpace(pattern), "0x")
	if p == "" {
		return false
	}
	upper := strings.ToUpper(p)
	for _, sub := range k.Subkeys {
		if strings.EqualFold(sub.KeyID, p) || strings.HasSuffix(strings.ToUpper(sub.Fingerprint), upper) {
			return true
		}
	}
	lower := strings.ToLower(pattern)
	for _, uid := range k.UserIDs {
		if strings.Contains(strings.ToLower(uid.ID), lower) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the key.
func (k Key) Clone() Key {
	dup := k
	dup.Subkeys = append([]Subkey(nil), k.Subkeys...)
	dup.UserIDs = make([]UserID, len(k.UserIDs))
	for i, uid := range k.UserIDs {
		uid.Signatures = append([]Signature(nil), uid.Signatures...)
		dup.UserIDs[i] = uid
	}
	return dup
}

// SubkeyFields projects the key/subkey field group at the key's detail level.
// Minimized output shows key ids instead of fingerprints.
func (k *Key) SubkeyFields(minimized bool) []row.Field {
	subkeys := k.Subkeys
	if k.Detail == DetailMinimum && len(subkeys) > 1 {
		subkeys = subkeys[:1]
	}
	fields := make([]row.Field, 0, len(subkeys))
	for i, sub := range subkeys {
		prefix := ""
		if i > 0 {
			prefix = "└─"
		}
		id := sub.Fingerprint
		if minimized || id == "" {
			id = sub.KeyID
		}
		field := row.Field{fmt.Sprintf("%s[%s] %s/%s", prefix, usageFlags(sub.Usage), algorithm(sub), id)}
		if k.Detail >= DetailStandard && !sub.Created.IsZero() {
			field = append(field, fmt.Sprintf(" (%s)", sub.Created.Format("2006-01-02")))
		}
		if k.Detail >= DetailFull {
			if !sub.Expires.IsZero() {
				field = append(field, fmt.Sprintf(" [exp: %s]", sub.Expires.Format("2006-01-02")))
			}
			if state := subkeyState(sub); state != "" {
				field = append(field, " "+state)
			}
		}
		fields = append(fields, field)
	}
	return fields
}

// UserFields projects the user field group at the key's detail level.
func (k *Key) UserFields(minimized bool) []row.Field {
	uids := k.UserIDs
	if k.Detail == DetailMinimum && len(uids) > 1 {
		uids = uids[:1]
	}
	fields := make([]row.Field, 0, len(uids))
	for i, uid := range uids {
		prefix := ""
		if i > 0 {
			prefix = "└─"
		}
		field := row.Field{fmt.Sprintf("%s[%s] %s", prefix, validityFlag(uid.Validity), uid.ID)}
		if uid.Revoked && k.Detail >= DetailStandard {
			field = append(field, " [revoked]")
		}
		fields = append(fields, field)
		if k.Detail < DetailFull || minimized {
			continue
		}
		for _, sig := range uid.Signatures {
			sigField := row.Field{fmt.Sprintf("   └─[%s] 0x%s", signatureClass(sig.Class), sig.KeyID)}
			if sig.UserID != "" {
				sigField = append(sigField, " "+sig.UserID)
			}
			if !sig.Created.IsZero() {
				sigField = append(sigField, fmt.Sprintf(" (%s)", sig.Created.Format("2006-01-02")))
			}
			fields = append(fields, sigField)
		}
	}
	return fields
}

// SubkeyInfo returns the flattened, unwrapped key/subkey field group.
func (k *Key) SubkeyInfo(minimized bool) []string {
	return row.Flatten(k.SubkeyFields(minimized), minimized)
}

// UserInfo returns the flattened, unwrapped user field group.
func (k *Key) UserInfo(minimized bool) []string {
	return row.Flatten(k.UserFields(minimized), minimized)
}

func usageFlags(usage string) string {
	usage = strings.ToLower(usage)
	flags := []byte("----")
	for i, c := range []byte("scea") {
		if strings.IndexByte(usage, c) >= 0 {
			flags[i] = c
		}
	}
	return string(flags)
}

func algorithm(sub Subkey) string {
	if sub.Length > 0 && !strings.ContainsAny(sub.Algorithm, "0123456789") {
		return fmt.Sprintf("%s%d", sub.Algorithm, sub.Length)
	}
	if sub.Algorithm == "" {
		return "unknown"
	}
	return sub.Algorithm
}

func subkeyState(sub Subkey) string {
	switch {
	case sub.Revoked:
		return "[revoked]"
	case sub.Expired:
		return "[expired]"
	}
	return ""
}

func validityFlag(validity string) string {
	switch validity {
	case "u", "f", "m", "n", "r", "e":
		return validity
	}
	return "?"
}

func signatureClass(class string) string {
	if strings.HasPrefix(class, "30") {
		return "rev"
	}
	return "sig"
}
