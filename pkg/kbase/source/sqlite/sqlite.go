package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/kbase/pkg/kbase/internalerr"
	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/reader"
)

// DefaultTable is the table read when none is configured.
const DefaultTable = "statements"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Source reads facts and rules from a SQLite table of (id, kind, body) rows.
// It only ever reads; the knowledge base itself lives in memory.
type Source struct {
	db *sql.DB
}

// Open opens the database at path.
func Open(ctx context.Context, path string) (*Source, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &Source{db: db}, nil
}

// Close closes the database connection
func (s *Source) Close() error {
	return s.db.Close()
}

// CreateTable creates an empty statement table if it does not exist.
func (s *Source) CreateTable(ctx context.Context, table string) error {
	if !identRe.MatchString(table) {
		return fmt.Errorf("%w: table name %q", internalerr.ErrInvalidInput, table)
	}
	schema := `
CREATE TABLE IF NOT EXISTS ` + table + ` (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL CHECK (kind IN ('fact', 'rule')),
	body TEXT NOT NULL
);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Insert appends one row. Bodies use the reader syntax without the kind prefix.
func (s *Source) Insert(ctx context.Context, table string, sentence logic.Sentence) error {
	if !identRe.MatchString(table) {
		return fmt.Errorf("%w: table name %q", internalerr.ErrInvalidInput, table)
	}
	kind := "fact"
	if _, ok := sentence.(logic.Rule); ok {
		kind = "rule"
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO "+table+" (kind, body) VALUES (?, ?)", kind, sentence.String())
	return err
}

// Statements reads every row of table in id order.
func (s *Source) Statements(ctx context.Context, table string) ([]logic.Sentence, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("%w: table name %q", internalerr.ErrInvalidInput, table)
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("table %s: %w", table, internalerr.ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, kind, body FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []logic.Sentence
	for rows.Next() {
		var (
			id         int64
			kind, body string
		)
		if err := rows.Scan(&id, &kind, &body); err != nil {
			return nil, err
		}

		var sentence logic.Sentence
		switch strings.ToLower(strings.TrimSpace(kind)) {
		case "fact":
			sentence, err = reader.ParseStatement(body)
		case "rule":
			sentence, err = reader.ParseRule(body)
		default:
			err = fmt.Errorf("%w: unknown kind %q", internalerr.ErrInvalidInput, kind)
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", id, err)
		}
		out = append(out, sentence)
	}
	return out, rows.Err()
}
