package order

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/matzehuels/perfwall/pkg/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	email      TEXT NOT NULL,
	material   TEXT NOT NULL,
	total      REAL NOT NULL,
	data       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS orders_created_at ON orders (created_at DESC);
`

// SQLiteStore keeps orders in a local SQLite database. The full order is
// stored as JSON; a few columns are duplicated for querying.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, o *Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, created_at, email, material, total, data)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.CreatedAt.UnixNano(), o.Customer.Email, o.Breakdown.Material, o.Breakdown.Total, string(data),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Order, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM orders WHERE id = ?`, id).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return decodeOrder(data)
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Order, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM orders ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		o, err := decodeOrder(data)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CountSince returns how many orders were created at or after t.
func (s *SQLiteStore) CountSince(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE created_at >= ?`, t.UnixNano()).Scan(&n)
	return n, err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func decodeOrder(data string) (*Order, error) {
	var o Order
	if err := json.Unmarshal([]byte(data), &o); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored order")
	}
	return &o, nil
}

var _ Store = (*SQLiteStore)(nil)
