package dictionary

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// createdLayout is fixed-width so created_at sorts lexically.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps learned words in the learned_words table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened and migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a new entry.
func (s *SQLiteStore) Create(ctx context.Context, word, definition string) (SavedWord, error) {
	w, err := newSavedWord(word, definition)
	if err != nil {
		return SavedWord{}, err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO learned_words (id, word, definition, created_at) VALUES (?, ?, ?, ?)`,
		w.ID, w.Word, w.Definition, w.CreatedAt.Format(createdLayout),
	); err != nil {
		return SavedWord{}, fmt.Errorf("insert learned word: %w", err)
	}
	return w, nil
}

// List returns every entry ordered by word.
func (s *SQLiteStore) List(ctx context.Context) ([]SavedWord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, word, definition, created_at
		FROM learned_words
		ORDER BY word ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query learned words: %w", err)
	}
	defer rows.Close()

	out := []SavedWord{}
	for rows.Next() {
		var (
			w       SavedWord
			created string
		)
		if err := rows.Scan(&w.ID, &w.Word, &w.Definition, &created); err != nil {
			return nil, fmt.Errorf("scan learned word: %w", err)
		}
		at, err := time.Parse(createdLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", w.ID, err)
		}
		w.CreatedAt = at
		out = append(out, w)
	}
	return out, rows.Err()
}

// Delete removes the entry with id, or returns ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM learned_words WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete learned word: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete learned word: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
