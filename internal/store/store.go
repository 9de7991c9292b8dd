package store

// Store is the aggregate of exactly one Config and one DB described in
// spec.md §3: owned for the process lifetime, created at startup, mutated
// by every connection under the dispatcher's exclusive access (see
// internal/server), destroyed at process exit.
type Store struct {
	Config Config
	DB     *DB
}

// New builds a Store from a Config and a fresh, empty DB. Callers that
// loaded an RDB snapshot at startup populate the DB via Set before the
// accept loop begins (spec.md §4.3/§5).
func New(cfg Config) *Store {
	return &Store{Config: cfg, DB: NewDB()}
}
