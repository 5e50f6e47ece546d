// Package store persists notes for the demo application in an SQLite
// database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	//nolint:revive,nolintlint // Idiomatic way of loading DB libraries.
	_ "github.com/glebarez/go-sqlite"
)

// ErrNotFound is returned when a requested note doesn't exist.
var ErrNotFound = errors.New("note not found")

// Note is a single stored note.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
}

// Store wraps an SQLite database holding notes.
type Store struct {
	*sql.DB
	path    string
	timeNow func() time.Time
}

// Open creates and configures a new SQLite database connection.
func Open(path string, timeNow func() time.Time) (*Store, error) {
	var s *Store
	if strings.Contains(path, "mode=memory") || strings.Contains(path, ":memory:") {
		defer func() {
			if s != nil {
				// Keep the in-memory database alive across connections.
				// See https://github.com/mattn/go-sqlite3#faq
				s.SetMaxIdleConns(10)
				s.SetConnMaxLifetime(time.Duration(math.Inf(1)))
			}
		}()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed opening SQLite database: %w", err)
	}

	s = &Store{DB: db, path: path, timeNow: timeNow}

	return s, nil
}

// Init creates the database schema if it doesn't exist yet.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL DEFAULT '',
			pinned     INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed creating database schema: %w", err)
	}

	return nil
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// CreateNote inserts a new note and returns it with its assigned ID.
func (s *Store) CreateNote(ctx context.Context, title, content string, pinned bool) (*Note, error) {
	note := &Note{
		Title: title, Content: content, Pinned: pinned,
		CreatedAt: s.timeNow().UTC(),
	}

	res, err := s.ExecContext(ctx,
		`INSERT INTO notes (title, content, pinned, created_at) VALUES (?, ?, ?, ?)`,
		note.Title, note.Content, note.Pinned, note.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed inserting note: %w", err)
	}

	note.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed reading inserted note ID: %w", err)
	}

	return note, nil
}

// GetNote loads a single note by ID.
func (s *Store) GetNote(ctx context.Context, id int64) (*Note, error) {
	note := &Note{}
	err := s.QueryRowContext(ctx,
		`SELECT id, title, content, pinned, created_at FROM notes WHERE id = ?`, id).
		Scan(&note.ID, &note.Title, &note.Content, &note.Pinned, &note.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed loading note %d: %w", id, err)
	}

	return note, nil
}

// ListNotes returns up to limit notes, pinned notes first, newest first.
func (s *Store) ListNotes(ctx context.Context, limit int64) ([]*Note, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT id, title, content, pinned, created_at FROM notes
		 ORDER BY pinned DESC, created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed listing notes: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only query.

	var notes []*Note
	for rows.Next() {
		note := &Note{}
		err = rows.Scan(&note.ID, &note.Title, &note.Content, &note.Pinned, &note.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed scanning note row: %w", err)
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading note rows: %w", err)
	}

	return notes, nil
}

// DeleteNote removes a note by ID.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed deleting note %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
