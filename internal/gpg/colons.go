package gpg

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/keyring-tui/internal/keyring"
)

// Field positions of the --with-colons listing.
const (
	colType     = 0
	colValidity = 1
	colLength   = 2
	colAlgo     = 3
	colKeyID    = 4
	colCreated  = 5
	colExpires  = 6
	colUserID   = 9
	colClass    = 10
	colUsage    = 11
	colCurve    = 16
)

var algorithmNames = map[string]string{
	"1":  "rsa",
	"2":  "rsa",
	"3":  "rsa",
	"16": "elg",
	"17": "dsa",
	"18": "ecdh",
	"19": "ecdsa",
	"22": "eddsa",
}

// parseColons turns a --with-colons listing into keys of the given category.
func parseColons(output []byte, category keyring.Category) []keyring.Key {
	var (
		keys    []keyring.Key
		current *keyring.Key
		uid     *keyring.UserID
	)
	flush := func() {
		if current != nil {
			keys = append(keys, *current)
		}
	}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ":")
		switch fields[colType] {
		case "pub", "sec":
			flush()
			current = &keyring.Key{Category: category}
			current.Subkeys = append(current.Subkeys, parseSubkey(fields))
			uid = nil
		case "sub", "ssb":
			if current == nil {
				continue
			}
			current.Subkeys = append(current.Subkeys, parseSubkey(fields))
			uid = nil
		case "fpr":
			if current == nil || len(current.Subkeys) == 0 {
				continue
			}
			last := &current.Subkeys[len(current.Subkeys)-1]
			if last.Fingerprint == "" {
				last.Fingerprint = field(fields, colUserID)
			}
		case "uid":
			if current == nil {
				continue
			}
			validity := field(fields, colValidity)
			current.UserIDs = append(current.UserIDs, keyring.UserID{
				ID:       unescape(field(fields, colUserID)),
				Validity: validity,
				Revoked:  validity == "r",
			})
			uid = &current.UserIDs[len(current.UserIDs)-1]
		case "sig", "rev":
			// Signatures following a subkey are binding signatures.
			if uid == nil {
				continue
			}
			uid.Signatures = append(uid.Signatures, keyring.Signature{
				KeyID:   field(fields, colKeyID),
				UserID:  unescape(field(fields, colUserID)),
				Created: parseTime(field(fields, colCreated)),
				Class:   field(fields, colClass),
			})
		}
	}
	flush()
	return keys
}

func parseSubkey(fields []string) keyring.Subkey {
	validity := field(fields, colValidity)
	length, _ := strconv.Atoi(field(fields, colLength))
	algo := field(fields, colCurve)
	if algo == "" {
		algo = algorithmNames[field(fields, colAlgo)]
	}
	// Upper-case capabilities describe the whole key, lower-case ones this key.
	var usage strings.Builder
	for _, c := range field(fields, colUsage) {
		if c >= 'a' && c <= 'z' {
			usage.WriteRune(c)
		}
	}
	return keyring.Subkey{
		KeyID:     field(fields, colKeyID),
		Algorithm: algo,
		Length:    length,
		Usage:     usage.String(),
		Created:   parseTime(field(fields, colCreated)),
		Expires:   parseTime(field(fields, colExpires)),
		Revoked:   validity == "r",
		Expired:   validity == "e",
	}
}

func field(fields []string, index int) string {
	if index >= len(fields) {
		return ""
	}
	return fields[index]
}

// parseTime accepts seconds since the epoch and the ISO basic form gpg uses
// with --fixed-list-mode on some versions.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC()
	}
	if t, err := time.Parse("20060102T150405", value); err == nil {
		return t
	}
	return time.Time{}
}

func unescape(value string) string {
	if !strings.Contains(value, `\x`) {
		return value
	}
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		if value[i] == '\\' && i+3 < len(value) && value[i+1] == 'x' {
			if n, err := strconv.ParseUint(value[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(value[i])
	}
	return b.String()
}
