// Package repository contains data access logic separated from HTTP handlers.
// This file defines the ItemRepo, which owns the pooled connection to the
// store and the single `items` relation.
package repository

import (
	"context"      // context carries request cancellation into DB operations
	"database/sql" // sql provides the connection pool and generic operations
	"errors"
	"fmt"
	"sync"

	"github.com/iliyamo/items-service/internal/database"
	"github.com/iliyamo/items-service/internal/model"
)

// openFunc opens a verified pool for a connection URL.
type openFunc func(ctx context.Context, rawURL string) (*sql.DB, database.Dialect, error)

// ItemRepo encapsulates all database queries related to items.  Unlike the
// other repositories it also owns the pool lifecycle: the pool is opened by
// Connect and released by Disconnect, and every query checks a connection
// out of it for the duration of the call.
type ItemRepo struct {
	url  string
	open openFunc

	mu      sync.RWMutex
	db      *sql.DB
	dialect database.Dialect
}

// NewItemRepo constructs an ItemRepo for the given connection URL.  No
// connection is made until Connect is called.
func NewItemRepo(rawURL string) *ItemRepo {
	return &ItemRepo{url: rawURL, open: database.Open}
}

// Connect opens the pool and makes sure the items table exists.  It is safe
// to call repeatedly: an existing pool is reused and the CREATE TABLE IF NOT
// EXISTS statement never touches existing rows.  Errors wrap ErrConnection
// and are not retried here.
func (r *ItemRepo) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		db, d, err := r.open(ctx, r.url)
		if err != nil {
			return fmt.Errorf("%w: open: %w", ErrConnection, err)
		}
		r.db, r.dialect = db, d
	}
	if _, err := r.db.ExecContext(ctx, r.dialect.CreateItems); err != nil {
		return fmt.Errorf("%w: ensure items table: %w", ErrConnection, err)
	}
	return nil
}

// Disconnect releases the pool.  Calling it when Connect never succeeded, or
// calling it twice, is a no-op.
func (r *ItemRepo) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// Connected reports whether a pool is currently held.
func (r *ItemRepo) Connected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db != nil
}

// conn returns the current pool and dialect or ErrNotConnected.
func (r *ItemRepo) conn() (*sql.DB, database.Dialect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.db == nil {
		return nil, database.Dialect{}, fmt.Errorf("%w: %w", ErrStore, ErrNotConnected)
	}
	return r.db, r.dialect, nil
}

// Ping runs a trivial query through the pool to prove the store answers.
func (r *ItemRepo) Ping(ctx context.Context) error {
	db, _, err := r.conn()
	if err != nil {
		return err
	}
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrStore, err)
	}
	return nil
}

// List returns every row of the items table in the store's natural order.
// An empty table yields an empty, non-nil slice.
func (r *ItemRepo) List(ctx context.Context) ([]*model.Item, error) {
	db, d, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, d.SelectItems)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %w", ErrStore, err)
	}
	defer rows.Close()

	out := make([]*model.Item, 0)
	for rows.Next() {
		var (
			id   int64
			name string
			desc sql.NullString
		)
		if err := rows.Scan(&id, &name, &desc); err != nil {
			return nil, fmt.Errorf("%w: scan item: %w", ErrStore, err)
		}
		it := &model.Item{ID: &id, Item: name}
		if desc.Valid {
			it.Descripcion = &desc.String
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list items: %w", ErrStore, err)
	}
	return out, nil
}

// Create inserts one item.  When the dialect supports it the generated id
// is read back in the same statement (INSERT ... RETURNING id), so there is
// no window between the insert and the id lookup.
//
// If the store cannot report the id inline, the row is inserted without it
// and the returned Item has a nil ID.  Callers must tolerate a nil ID: the
// row was durably created, only its id is unknown.
func (r *ItemRepo) Create(ctx context.Context, name string, descripcion *string) (*model.Item, error) {
	db, d, err := r.conn()
	if err != nil {
		return nil, err
	}
	it := &model.Item{Item: name, Descripcion: descripcion}
	desc := nullString(descripcion)

	if d.InsertReturning != "" {
		var id int64
		err := db.QueryRowContext(ctx, d.InsertReturning, name, desc).Scan(&id)
		if err == nil {
			it.ID = &id
			return it, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: insert item: %w", ErrStore, err)
		}
		// The driver returned no row for RETURNING; fall through to the plain insert.
	}

	if _, err := db.ExecContext(ctx, d.Insert, name, desc); err != nil {
		return nil, fmt.Errorf("%w: insert item: %w", ErrStore, err)
	}
	return it, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
