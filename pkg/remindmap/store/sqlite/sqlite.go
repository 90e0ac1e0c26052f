package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/theokkk4/remindmap/pkg/remindmap/internalerr"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
	"github.com/theokkk4/remindmap/pkg/remindmap/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// WAL lets the server read while the CLI imports.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist. seq records insertion
// order and survives upserts.
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS items (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT '',
	due_date TEXT,
	color TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertItem inserts or replaces an item by id
func (s *sqliteStore) UpsertItem(ctx context.Context, it item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}

	var due sql.NullString
	if it.DueDate != nil {
		due = sql.NullString{String: it.DueDate.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO items (id, title, description, priority, due_date, color, completed)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title=excluded.title,
	description=excluded.description,
	priority=excluded.priority,
	due_date=excluded.due_date,
	color=excluded.color,
	completed=excluded.completed;
`, it.ID, it.Title, it.Description, string(it.Priority), due, it.Color, it.Completed)
	return err
}

const selectItems = `SELECT id, title, description, priority, due_date, color, completed FROM items`

// GetItem retrieves an item by id
func (s *sqliteStore) GetItem(ctx context.Context, id string) (item.Item, error) {
	row := s.db.QueryRowContext(ctx, selectItems+` WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return item.Item{}, fmt.Errorf("item %q: %w", id, internalerr.ErrNotFound)
	}
	return it, err
}

// ListItems returns all items in insertion order
func (s *sqliteStore) ListItems(ctx context.Context) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItems+` ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]item.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteItem removes an item by id
func (s *sqliteStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("item %q: %w", id, internalerr.ErrNotFound)
	}
	return nil
}

// Count returns the number of stored items
func (s *sqliteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (item.Item, error) {
	var (
		it       item.Item
		priority string
		due      sql.NullString
	)
	if err := sc.Scan(&it.ID, &it.Title, &it.Description, &priority, &due, &it.Color, &it.Completed); err != nil {
		return item.Item{}, err
	}
	it.Priority = item.Priority(priority)

	if due.Valid && due.String != "" {
		parsed, err := time.Parse(time.RFC3339Nano, due.String)
		if err != nil {
			return item.Item{}, fmt.Errorf("item %q: parse due date: %w", it.ID, err)
		}
		it.DueDate = &parsed
	}
	return it, nil
}
