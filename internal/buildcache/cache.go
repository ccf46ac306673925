// Package buildcache caches rendered translations in a local SQLite
// database, keyed by a digest of the source text and the settings that
// affect rendering. Translation is deterministic, so a digest hit can be
// replayed without re-running the pipeline.
package buildcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pycatalyst/catalyst/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS translations (
	digest     TEXT PRIMARY KEY,
	output     TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// Cache is a handle on one cache database. It is safe for sequential use
// by one run; the CLI opens it per invocation.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Digest keys a translation by its source text and the settings that
// change the rendered output.
func Digest(source string, cfg *config.Config) string {
	h := sha256.New()
	h.Write([]byte(cfg.Output))
	h.Write([]byte{0})
	h.Write([]byte(cfg.Indent))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached output for digest, if present.
func (c *Cache) Get(digest string) (string, bool, error) {
	var output string
	err := c.db.QueryRow(`SELECT output FROM translations WHERE digest = ?`, digest).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return output, true, nil
}

// Put stores the output for digest, replacing any previous entry.
func (c *Cache) Put(digest, output string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO translations (digest, output, created_at) VALUES (?, ?, ?)`,
		digest, output, time.Now().Unix(),
	)
	return err
}
