// Package cache stores transpilation results in SQLite, keyed by a digest of
// the source text and the options that shaped the generated code.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"
)

var log = commonlog.GetLogger("compy.cache")

// ErrMiss indicates no artifact is stored under the key.
var ErrMiss = errors.New("cache miss")

// Artifact is one cached transpilation.
type Artifact struct {
	Key       string            `cbor:"1,keyasint"`
	Source    string            `cbor:"2,keyasint"`
	Code      string            `cbor:"3,keyasint"`
	Warnings  []string          `cbor:"4,keyasint,omitempty"`
	Functions map[string]string `cbor:"5,keyasint,omitempty"`
	CreatedAt time.Time         `cbor:"6,keyasint"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cache: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Key digests the source text together with a fingerprint of everything
// else that affects the generated code (frontend, keyword style, version).
func Key(source []byte, fingerprint string) string {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// Store is a SQLite-backed artifact cache.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS artifacts (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	log.Debugf("opened cache %s", path)
	return &Store{db: db, path: path}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the artifact stored under key, or ErrMiss.
func (s *Store) Get(key string) (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow("SELECT data FROM artifacts WHERE key = ?", key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("querying artifact: %w", err)
	}

	var a Artifact
	if err := cbor.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("cache: unmarshal artifact: %w", err)
	}
	if a.Key != key {
		log.Warningf("artifact %s is stored under %s, ignoring", a.Key, key)
		return nil, ErrMiss
	}
	return &a, nil
}

// Put stores a, replacing any artifact with the same key. A zero CreatedAt
// is set to the current time.
func (s *Store) Put(a *Artifact) error {
	if a.Key == "" {
		return errors.New("cache: artifact has no key")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	data, err := encMode.Marshal(a)
	if err != nil {
		return fmt.Errorf("cache: marshal artifact: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO artifacts (key, data, created_at) VALUES (?, ?, ?)",
		a.Key, data, a.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("saving artifact: %w", err)
	}
	return nil
}

// Prune deletes artifacts created before cutoff and reports how many went.
func (s *Store) Prune(cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM artifacts WHERE created_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("pruning artifacts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning artifacts: %w", err)
	}
	if n > 0 {
		log.Infof("pruned %d cached artifacts", n)
	}
	return n, nil
}
