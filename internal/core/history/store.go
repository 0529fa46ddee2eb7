// Package history persists executed requests in a local SQLite
// database so the sidebar can re-open past calls.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one executed request.
type Entry struct {
	ID           int64
	Method       string
	URL          string
	StatusCode   int
	Duration     time.Duration
	Size         int64
	RequestBody  string
	ResponseBody string
	Headers      string // request headers, JSON-encoded
	SentAt       time.Time
}

// Store manages history persistence.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			method        TEXT NOT NULL,
			url           TEXT NOT NULL,
			status_code   INTEGER,
			duration_ns   INTEGER,
			size          INTEGER,
			request_body  TEXT,
			response_body TEXT,
			headers       TEXT,
			sent_at       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_sent_at ON history(sent_at DESC);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}

	return &Store{db: db}, nil
}

// Add inserts an entry and returns its row ID.
func (s *Store) Add(e Entry) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO history (method, url, status_code, duration_ns, size, request_body, response_body, headers, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Method, e.URL, e.StatusCode, e.Duration.Nanoseconds(), e.Size,
		e.RequestBody, e.ResponseBody, e.Headers,
		e.SentAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting history: %w", err)
	}
	return result.LastInsertId()
}

// List returns the most recent entries.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, method, url, status_code, duration_ns, size, request_body, response_body, headers, sent_at
		FROM history
		ORDER BY sent_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Get returns a single entry by ID.
func (s *Store) Get(id int64) (*Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, method, url, status_code, duration_ns, size, request_body, response_body, headers, sent_at
		FROM history WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("loading history entry: %w", err)
	}
	defer rows.Close()
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("history entry %d not found", id)
	}
	return &entries[0], nil
}

// Search returns entries whose URL contains the query.
func (s *Store) Search(query string) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, method, url, status_code, duration_ns, size, request_body, response_body, headers, sent_at
		FROM history
		WHERE url LIKE ?
		ORDER BY sent_at DESC
		LIMIT 50`, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("searching history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Prune keeps only the newest max entries.
func (s *Store) Prune(max int) error {
	if max <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY sent_at DESC LIMIT ?
		)`, max)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// Clear removes all entries.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM history")
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationNs int64
		var sentAt string
		err := rows.Scan(&e.ID, &e.Method, &e.URL, &e.StatusCode, &durationNs,
			&e.Size, &e.RequestBody, &e.ResponseBody, &e.Headers, &sentAt)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Duration = time.Duration(durationNs)
		e.SentAt, _ = time.Parse(time.RFC3339Nano, sentAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
