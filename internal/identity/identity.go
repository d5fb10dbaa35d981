// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identity derives stable content identities from article URLs and
// persists the set of identities already processed.
package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/alert-digest/internal/fsutil"
)

// idLen is the number of hex digits kept from the digest.
const idLen = 10

// CanonicalURL unwraps redirect and tracking wrappers from an article link.
// Alert feeds hide the target behind a "url" or "q" query parameter, or a
// "url" parameter inside the fragment; the first match wins. An unparseable
// input is returned unchanged.
func CanonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for _, key := range []string{"url", "q"} {
		if v := q.Get(key); v != "" {
			return unescapeOr(v)
		}
	}
	if frag, err := url.ParseQuery(u.Fragment); err == nil {
		if v := frag.Get("url"); v != "" {
			return unescapeOr(v)
		}
	}
	return raw
}

// unescapeOr decodes a query value one more time; wrapper parameters are
// often double-encoded. Returns the input when decoding fails.
func unescapeOr(v string) string {
	if dec, err := url.QueryUnescape(v); err == nil {
		return dec
	}
	return v
}

// Domain returns the host of a URL with a leading "www." stripped, or ""
// when the URL cannot be parsed.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// HashID returns the stable content identity for a canonical URL: the first
// 10 hex digits of its SHA-1 digest.
func HashID(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:idLen]
}

// Set is the collection of identities already processed. Membership gates
// reprocessing; it only grows during a normal run.
type Set map[string]struct{}

// Contains reports whether id has been processed before.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks id as processed.
func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Load reads the identity set from a JSON array of strings. A missing file
// yields an empty set and a nil error. Unreadable or malformed content also
// yields an empty set, with the cause returned so the caller can log it and
// continue: a lost identity set only risks reprocessing, never data loss.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return Set{}, fmt.Errorf("reading identity set: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return Set{}, fmt.Errorf("parsing identity set: %w", err)
	}

	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s, nil
}

// Save writes the identity set as a sorted JSON array. The write is
// whole-file via temp-and-rename.
func Save(path string, s Set) error {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding identity set: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, append(data, '\n')); err != nil {
		return fmt.Errorf("writing identity set: %w", err)
	}
	return nil
}
