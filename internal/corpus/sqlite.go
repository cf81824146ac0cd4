package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"lexsim/internal/domain"
)

const schemaDDL = `CREATE TABLE IF NOT EXISTS qa_pairs (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT,
    answer   TEXT
);`

// SQLiteStore keeps a corpus in a SQLite table. Rows are loaded in id order,
// which is the order they were imported in.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a SQLite database and ensures the schema.
// For in-memory databases pass ":memory:".
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite corpus: %w", err)
	}
	// One connection keeps ":memory:" databases from splitting across the pool.
	db.SetMaxOpenConns(1)
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore wraps an open database and ensures the qa_pairs table exists.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("corpus: db is nil")
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		return nil, fmt.Errorf("corpus: ensure schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Import appends pairs in a single transaction and returns how many were written.
func (s *SQLiteStore) Import(ctx context.Context, pairs []domain.QAPair) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO qa_pairs(question, answer) VALUES(?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, p := range pairs {
		if _, err := stmt.ExecContext(ctx, p.Question, p.Answer); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(pairs), nil
}

// Load returns every pair in id order. Rows with a NULL or blank question are
// skipped.
func (s *SQLiteStore) Load(ctx context.Context) ([]domain.QAPair, LoadStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var stats LoadStats
	rows, err := s.db.QueryContext(ctx, `SELECT question, answer FROM qa_pairs ORDER BY id`)
	if err != nil {
		return nil, stats, err
	}
	defer rows.Close()

	var pairs []domain.QAPair
	for rows.Next() {
		var q, a sql.NullString
		if err := rows.Scan(&q, &a); err != nil {
			return nil, stats, err
		}
		if !q.Valid || strings.TrimSpace(q.String) == "" {
			stats.Skipped++
			continue
		}
		pairs = append(pairs, domain.QAPair{Question: q.String, Answer: a.String})
		stats.Loaded++
	}
	if err := rows.Err(); err != nil {
		return nil, stats, err
	}
	return pairs, stats, nil
}

// Clear removes every row.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM qa_pairs`)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
