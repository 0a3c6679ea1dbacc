package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/piwi3910/Carcass/internal/model"
)

// ErrDesignNotFound is returned when no stored design matches a name or ID.
var ErrDesignNotFound = errors.New("design not found")

const librarySchema = `
CREATE TABLE IF NOT EXISTS designs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	piece_count INTEGER NOT NULL DEFAULT 0,
	data TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// LibraryEntry describes a stored design without its pieces.
type LibraryEntry struct {
	ID         string
	Name       string
	PieceCount int
	CreatedAt  string
	UpdatedAt  string
}

// Library is a SQLite-backed collection of named designs.
type Library struct {
	db *sql.DB
}

// OpenLibrary opens (or creates) the design library at path. Use
// ":memory:" for a throwaway library.
func OpenLibrary(path string) (*Library, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	// A single connection keeps ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(librarySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize library schema: %w", err)
	}
	return &Library{db: db}, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save stores the project under name. An existing design with the same
// name is overwritten and keeps its ID and creation time.
func (l *Library) Save(ctx context.Context, name string, p model.Project) (LibraryEntry, error) {
	if name == "" {
		return LibraryEntry{}, fmt.Errorf("design name is required")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return LibraryEntry{}, fmt.Errorf("failed to marshal design: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	existing, err := l.entry(ctx, "SELECT id, name, piece_count, created_at, updated_at FROM designs WHERE name = ?", name)
	switch {
	case errors.Is(err, ErrDesignNotFound):
		entry := LibraryEntry{
			ID:         uuid.New().String()[:8],
			Name:       name,
			PieceCount: len(p.Pieces),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		_, err = l.db.ExecContext(ctx,
			"INSERT INTO designs (id, name, piece_count, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			entry.ID, entry.Name, entry.PieceCount, string(data), entry.CreatedAt, entry.UpdatedAt,
		)
		if err != nil {
			return LibraryEntry{}, fmt.Errorf("failed to save design: %w", err)
		}
		return entry, nil
	case err != nil:
		return LibraryEntry{}, err
	}

	_, err = l.db.ExecContext(ctx,
		"UPDATE designs SET piece_count = ?, data = ?, updated_at = ? WHERE id = ?",
		len(p.Pieces), string(data), now, existing.ID,
	)
	if err != nil {
		return LibraryEntry{}, fmt.Errorf("failed to update design: %w", err)
	}
	existing.PieceCount = len(p.Pieces)
	existing.UpdatedAt = now
	return existing, nil
}

// List returns all stored designs ordered by name.
func (l *Library) List(ctx context.Context) ([]LibraryEntry, error) {
	rows, err := l.db.QueryContext(ctx,
		"SELECT id, name, piece_count, created_at, updated_at FROM designs ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	defer rows.Close()

	entries := []LibraryEntry{}
	for rows.Next() {
		var e LibraryEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.PieceCount, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	return entries, nil
}

// Load returns the design whose name or ID matches ref.
func (l *Library) Load(ctx context.Context, ref string) (model.Project, error) {
	var data string
	err := l.db.QueryRowContext(ctx,
		"SELECT data FROM designs WHERE name = ? OR id = ? LIMIT 1",
		ref, ref,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return model.Project{}, fmt.Errorf("design %q: %w", ref, ErrDesignNotFound)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to load design: %w", err)
	}

	p := model.NewProject()
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse design %q: %w", ref, err)
	}
	if p.Pieces == nil {
		p.Pieces = []model.Piece{}
	}
	return p, nil
}

// Delete removes the design whose name or ID matches ref.
func (l *Library) Delete(ctx context.Context, ref string) error {
	res, err := l.db.ExecContext(ctx, "DELETE FROM designs WHERE name = ? OR id = ?", ref, ref)
	if err != nil {
		return fmt.Errorf("failed to delete design: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete design: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("design %q: %w", ref, ErrDesignNotFound)
	}
	return nil
}

func (l *Library) entry(ctx context.Context, query string, args ...any) (LibraryEntry, error) {
	var e LibraryEntry
	err := l.db.QueryRowContext(ctx, query, args...).
		Scan(&e.ID, &e.Name, &e.PieceCount, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return LibraryEntry{}, ErrDesignNotFound
	}
	if err != nil {
		return LibraryEntry{}, fmt.Errorf("failed to get design: %w", err)
	}
	return e, nil
}
