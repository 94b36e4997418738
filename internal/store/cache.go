// Package store provides the in-memory SQLite cache for fetched image
// bytes. Nothing touches disk: the database lives for one process and
// rows live for one batch generation.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no image is cached for a key.
var ErrNotFound = errors.New("store: image not found")

// Cache holds fetched image bytes keyed by (generation, slot).
// Thread-safety: all methods are safe for concurrent use via internal
// mutex; batch fetches write from multiple goroutines.
type Cache struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates the in-memory cache. Shared-cache mode with a single
// connection so every statement sees the same database.
func Open() (*Cache, error) {
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache tables: %w", err)
	}
	return c, nil
}

func (c *Cache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS images (
		generation INTEGER NOT NULL,
		slot INTEGER NOT NULL,
		ref TEXT NOT NULL,
		data BLOB NOT NULL,
		fetched_at DATETIME NOT NULL,
		PRIMARY KEY (generation, slot)
	);
	CREATE INDEX IF NOT EXISTS idx_images_generation ON images(generation);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Put stores the image bytes for one batch slot.
func (c *Cache) Put(gen uint64, slot int, ref string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO images (generation, slot, ref, data, fetched_at) VALUES (?, ?, ?, ?, ?)`,
		gen, slot, ref, data, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("put image gen=%d slot=%d: %w", gen, slot, err)
	}
	return nil
}

// Get returns the cached bytes for one batch slot.
func (c *Cache) Get(gen uint64, slot int) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var data []byte
	err := c.db.QueryRow(
		`SELECT data FROM images WHERE generation = ? AND slot = ?`,
		gen, slot,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get image gen=%d slot=%d: %w", gen, slot, err)
	}
	return data, nil
}

// Size returns the cached byte count for a slot without loading the
// blob, for the card header.
func (c *Cache) Size(gen uint64, slot int) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	err := c.db.QueryRow(
		`SELECT length(data) FROM images WHERE generation = ? AND slot = ?`,
		gen, slot,
	).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("size image gen=%d slot=%d: %w", gen, slot, err)
	}
	return n, nil
}

// Count returns how many slots are cached for a generation.
func (c *Cache) Count(gen uint64) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int
	err := c.db.QueryRow(
		`SELECT COUNT(*) FROM images WHERE generation = ?`, gen,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count images gen=%d: %w", gen, err)
	}
	return n, nil
}

// ReleaseGeneration frees every image cached for a batch generation.
// Called when a batch is superseded and on session teardown so that
// repeated resets never accumulate image data.
func (c *Cache) ReleaseGeneration(gen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`DELETE FROM images WHERE generation = ?`, gen)
	if err != nil {
		return fmt.Errorf("release generation %d: %w", gen, err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
