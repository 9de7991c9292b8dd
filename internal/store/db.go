// Package store holds the keyed in-memory database and its immutable
// Config, grounded on the lineage repo's internal/database package and
// original_source/src/store/db.go — but scoped down to the single string
// value type spec.md §3 describes, dropping the lineage's hashes, lists,
// sets, and sorted sets.
package store

import (
	"path/filepath"
	"sync"
	"time"
)

// record is the value record from spec.md §3: a string value and an
// optional absolute expiry instant.
type record struct {
	value  string
	expiry time.Time // zero value means "no expiry"
}

func (r record) hasExpiry() bool { return !r.expiry.IsZero() }

func (r record) isAlive(now time.Time) bool {
	return !r.hasExpiry() || r.expiry.After(now)
}

// DB is the keyed mapping from spec.md §3: string key to value record.
// Expiry is checked lazily on every read (spec.md §4.2) — a passive sweep
// is not required, and none is run here; an expired key lingers in
// memory until it is overwritten (Get masks it but does not remove it).
type DB struct {
	mu   sync.RWMutex
	data map[string]record
}

// NewDB returns an empty DB.
func NewDB() *DB {
	return &DB{data: make(map[string]record)}
}

// Set inserts or overwrites key with value. A zero expiry means the key
// never expires. Set never fails given well-formed inputs.
func (d *DB) Set(key, value string, expiry time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data[key] = record{value: value, expiry: expiry}
}

// Get returns the stored value for key if it exists and is not expired.
// Expired entries are masked on read, not removed.
func (d *DB) Get(key string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.data[key]
	if !ok || !r.isAlive(time.Now()) {
		return "", false
	}
	return r.value, true
}

// Keys returns every key whose record matches the glob pattern, without
// regard to whether it has expired (spec.md §8: KEYS "*" includes
// live-or-expired-but-unreaped records). An unparseable pattern yields an
// empty result rather than an error, per spec.md §4.2 — filepath.Match's
// ErrBadPattern is swallowed the same way the lineage repo's own KEYS
// handler swallows it.
func (d *DB) Keys(pattern string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	matches := make([]string, 0, len(d.data))
	for key := range d.data {
		ok, err := filepath.Match(pattern, key)
		if err != nil {
			return nil
		}
		if ok {
			matches = append(matches, key)
		}
	}
	return matches
}
