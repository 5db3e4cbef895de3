// Package history keeps a SQLite log of evaluated expressions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/codefionn/calcschnell/internal/expr"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one evaluated expression
type Entry struct {
	ID         int64     `json:"id"`
	Expression string    `json:"expression"`
	Result     *float64  `json:"result,omitempty"` // nil on failure or for non-finite results
	Display    string    `json:"display"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Failed reports whether the evaluation failed
func (e Entry) Failed() bool {
	return e.ErrorKind != ""
}

// NewEntry builds an Entry from an evaluation outcome
func NewEntry(expression string, value float64, display string, err error) Entry {
	entry := Entry{
		Expression: expression,
		Display:    display,
		CreatedAt:  time.Now().UTC(),
	}
	if err != nil {
		if kind, ok := expr.KindOf(err); ok {
			entry.ErrorKind = kind.String()
		} else {
			entry.ErrorKind = "unknown"
		}
		return entry
	}
	if !math.IsNaN(value) && !math.IsInf(value, 0) {
		v := value
		entry.Result = &v
	}
	return entry
}

// Store handles SQLite operations for the history. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	dbPath string
	limit  int // entries kept after each Record; 0 keeps everything
}

// Open opens (creating if needed) the history database at dbPath
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return store, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// SetLimit makes Record prune all but the newest limit entries. Zero disables pruning.
func (s *Store) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.limit = limit
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		expression TEXT NOT NULL,
		result REAL,
		display TEXT NOT NULL,
		error_kind TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends an entry
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var result sql.NullFloat64
	if entry.Result != nil {
		result = sql.NullFloat64{Float64: *entry.Result, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (expression, result, display, error_kind, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.Expression, result, entry.Display, entry.ErrorKind, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record evaluation: %w", err)
	}

	if s.limit > 0 {
		if _, err := s.Prune(ctx, s.limit); err != nil {
			return err
		}
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expression, result, display, error_kind, created_at
		FROM evaluations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry  Entry
			result sql.NullFloat64
		)
		if err := rows.Scan(&entry.ID, &entry.Expression, &result, &entry.Display, &entry.ErrorKind, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if result.Valid {
			v := result.Float64
			entry.Result = &v
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune deletes all but the newest keep entries and returns how many were removed
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM evaluations WHERE id NOT IN (SELECT id FROM evaluations ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return res.RowsAffected()
}

// Clear deletes every entry
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM evaluations`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
