package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore keeps session keys in the kv table (see internal/sqlitedb migrations).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened and migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load reads the three keys of wordLength. Missing rows are zero values.
func (s *SQLiteStore) Load(ctx context.Context, wordLength int) (Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE key IN (?, ?, ?)`,
		TargetKey(wordLength), DefinitionKey(wordLength), GuessesKey(wordLength),
	)
	if err != nil {
		return Record{WordLength: wordLength, Guesses: []string{}}, fmt.Errorf("query kv: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string, 3)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Record{WordLength: wordLength, Guesses: []string{}}, fmt.Errorf("scan kv: %w", err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return Record{WordLength: wordLength, Guesses: []string{}}, fmt.Errorf("iterate kv: %w", err)
	}
	return decode(wordLength, kv)
}

// Save upserts all keys of r.WordLength in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, r Record) error {
	kv, err := encode(r)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for k, v := range kv {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at`,
			k, v, now,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
