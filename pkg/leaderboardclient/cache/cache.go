// Package cache provides the durable per-device mirror of the last known
// ranked lists. It is only ever a fallback: the remote service remains the
// authority whenever it is reachable.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS leaderboard_cache (
	mode       TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLiteCache stores one JSON-encoded ranked list per mode in a local sqlite
// file.
type SQLiteCache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Write overwrites the cached list for a mode.
func (c *SQLiteCache) Write(mode leaderboarddomain.Mode, list leaderboarddomain.RankedList) error {
	if list == nil {
		list = leaderboarddomain.RankedList{}
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode cache payload: %w", err)
	}

	_, err = c.db.Exec(
		`INSERT INTO leaderboard_cache (mode, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (mode) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(mode), string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache for mode %q: %w", mode, err)
	}
	return nil
}

// Read returns the cached list for a mode. A mode that was never written, or
// whose stored payload no longer parses, reports ok=false rather than an
// error.
func (c *SQLiteCache) Read(mode leaderboarddomain.Mode) (leaderboarddomain.RankedList, bool, error) {
	var payload string
	err := c.db.QueryRow(
		`SELECT payload FROM leaderboard_cache WHERE mode = ?`, string(mode),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache for mode %q: %w", mode, err)
	}

	var list leaderboarddomain.RankedList
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		// Corrupt payloads count as a cache miss.
		return nil, false, nil
	}
	return list, true, nil
}

// Close releases the database handle.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
