// Package archive keeps named snapshots of serialized timelines in a
// local SQLite database, so a working timeline can be saved and
// restored between sessions without juggling JSON files by hand.
package archive

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Snapshot describes one saved timeline. The payload itself is only
// returned by Load.
type Snapshot struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	EventCount int       `json:"event_count"`
}

// Archive handles snapshot database operations.
type Archive struct {
	db *sql.DB
}

// Open opens (and initializes) the snapshot database at the given path.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save stores a new snapshot of the serialized timeline under name.
// Names are not unique; each save is a new row and Load resolves a
// name to its newest snapshot.
func (a *Archive) Save(name string, payload []byte, eventCount int) (*Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = time.Now().Format("2006-01-02 15:04:05")
	}

	snap := &Snapshot{
		ID:         uuid.New().String(),
		Name:       name,
		CreatedAt:  time.Now(),
		EventCount: eventCount,
	}
	_, err := a.db.Exec(
		"INSERT INTO snapshots (id, name, created_at, event_count, payload) VALUES (?, ?, ?, ?, ?)",
		snap.ID, snap.Name, snap.CreatedAt, snap.EventCount, payload,
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	return snap, nil
}

// List returns all snapshots, newest first.
func (a *Archive) List() ([]Snapshot, error) {
	rows, err := a.db.Query(
		"SELECT id, name, created_at, event_count FROM snapshots ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.EventCount); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// Load fetches a snapshot's payload by exact name (newest wins) or by
// id prefix. Returns sql.ErrNoRows wrapped when nothing matches.
func (a *Archive) Load(ref string) ([]byte, *Snapshot, error) {
	var (
		snap    Snapshot
		payload []byte
	)
	err := a.db.QueryRow(`
		SELECT id, name, created_at, event_count, payload
		FROM snapshots
		WHERE name = ? OR id LIKE ?
		ORDER BY created_at DESC, id
		LIMIT 1
	`, ref, ref+"%").Scan(&snap.ID, &snap.Name, &snap.CreatedAt, &snap.EventCount, &payload)
	if err != nil {
		return nil, nil, fmt.Errorf("load snapshot %q: %w", ref, err)
	}
	return payload, &snap, nil
}

// Delete removes every snapshot matching the name or id prefix and
// reports how many rows went away. Zero matches is not an error.
func (a *Archive) Delete(ref string) (int64, error) {
	res, err := a.db.Exec(
		"DELETE FROM snapshots WHERE name = ? OR id LIKE ?",
		ref, ref+"%",
	)
	if err != nil {
		return 0, fmt.Errorf("delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete snapshot: %w", err)
	}
	return n, nil
}
