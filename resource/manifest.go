package resource

import (
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// Entry records one verified resource in the manifest.
type Entry struct {
	Name      string
	Checksum  string
	Size      int64
	FetchedAt time.Time
}

// Manifest is a SQLite-backed ledger of verified resources, keyed by name.
type Manifest struct {
	db *sql.DB
}

// OpenManifest opens (creating if needed) a manifest database at path.
func OpenManifest(path string) (*Manifest, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	const schema = `CREATE TABLE IF NOT EXISTS resources (
		name       TEXT PRIMARY KEY,
		checksum   TEXT NOT NULL,
		size       INTEGER NOT NULL,
		fetched_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Manifest{db: db}, nil
}

// Lookup returns the manifest entry for a resource, if recorded.
func (m *Manifest) Lookup(name string) (Entry, bool, error) {
	var e Entry
	row := m.db.QueryRow(
		`SELECT name, checksum, size, fetched_at FROM resources WHERE name = ?`, name)
	if err := row.Scan(&e.Name, &e.Checksum, &e.Size, &e.FetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	return e, true, nil
}

// Record upserts a manifest entry.
func (m *Manifest) Record(e Entry) error {
	_, err := m.db.Exec(
		`INSERT INTO resources (name, checksum, size, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET checksum = excluded.checksum,
		 size = excluded.size, fetched_at = excluded.fetched_at`,
		e.Name, e.Checksum, e.Size, e.FetchedAt)
	return err
}

// Close closes the underlying database.
func (m *Manifest) Close() error { return m.db.Close() }
