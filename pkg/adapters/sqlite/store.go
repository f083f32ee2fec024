package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/model"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Store implements ports.ModelStore on a single SQLite table, one JSON row per model.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at path.
// If path is empty, it defaults to ".kinetree/models.db".
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = filepath.Join(".kinetree", "models.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS models (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create models table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Save upserts the description.
func (s *Store) Save(ctx context.Context, d model.Description) error {
	if d.Name == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO models(name,payload,updated_at) VALUES(?,?,?)
		 ON CONFLICT(name) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		d.Name, data, time.Now().Unix()); err != nil {
		return fmt.Errorf("upsert %s: %w", d.Name, err)
	}
	return nil
}

// Load retrieves a description by name.
func (s *Store) Load(ctx context.Context, name string) (model.Description, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM models WHERE name = ?`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Description{}, fmt.Errorf("%w: %q", domain.ErrModelNotFound, name)
		}
		return model.Description{}, fmt.Errorf("select %s: %w", name, err)
	}
	var d model.Description
	if err := json.Unmarshal(payload, &d); err != nil {
		return model.Description{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return d, nil
}

// Delete removes a description.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// List returns stored model names, sorted.
func (s *Store) List(ctx context.Context) (names []string, retErr error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM models ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select names: %w", err)
	}
	defer func() { _ = rows.Close() }()
	names = []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
