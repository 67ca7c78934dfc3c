package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Medium is the backing key/value store. Values are whole collections; a
// write replaces the previous value for the key.
type Medium interface {
	Read(ctx context.Context, key string) (value []byte, found bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Updater is implemented by media that can run one read-modify-write of a key
// atomically, including against other processes using the same backing store.
// fn receives the current value; an error from fn aborts without writing and
// is returned as is.
type Updater interface {
	Update(ctx context.Context, key string, fn func(value []byte, found bool) ([]byte, error)) error
}

const upsertCollection = `
	INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

type SQLiteMedium struct {
	db *sql.DB
}

func NewSQLiteMedium(db *sql.DB) *SQLiteMedium {
	return &SQLiteMedium{db: db}
}

func (m *SQLiteMedium) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := m.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("collection get: %w", err)
	}
	return []byte(value), true, nil
}

func (m *SQLiteMedium) Write(ctx context.Context, key string, value []byte) error {
	_, err := m.db.ExecContext(ctx, upsertCollection, key, string(value))
	if err != nil {
		return fmt.Errorf("collection upsert: %w", err)
	}
	return nil
}

func (m *SQLiteMedium) Update(ctx context.Context, key string, fn func(value []byte, found bool) ([]byte, error)) error {
	return WithImmediateTx(ctx, m.db, func(conn *sql.Conn) error {
		var (
			value string
			found = true
		)
		err := conn.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&value)
		if err == sql.ErrNoRows {
			found = false
		} else if err != nil {
			return fmt.Errorf("collection get: %w", err)
		}

		next, err := fn([]byte(value), found)
		if err != nil {
			return err
		}
		_, err = conn.ExecContext(ctx, upsertCollection, key, string(next))
		if err != nil {
			return fmt.Errorf("collection upsert: %w", err)
		}
		return nil
	})
}

func (m *SQLiteMedium) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return WithTx(ctx, m.db, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, k); err != nil {
				return fmt.Errorf("collection delete: %w", err)
			}
		}
		return nil
	})
}

// Keys lists stored keys in ascending order.
func (m *SQLiteMedium) Keys(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT key FROM collections ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("collection keys: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("collection keys scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collection keys rows: %w", err)
	}
	return out, nil
}

// MemoryMedium keeps collections in process memory.
type MemoryMedium struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{data: map[string][]byte{}}
}

func (m *MemoryMedium) Read(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryMedium) Write(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	m.data[key] = v
	m.mu.Unlock()
	return nil
}

func (m *MemoryMedium) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.data, k)
	}
	m.mu.Unlock()
	return nil
}
