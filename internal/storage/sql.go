package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ Store = (*SQLStore)(nil)

// Supported database/sql drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

type dialect struct {
	schema string
	get    string
	upsert string
	del    string
}

func dialectFor(driver, table string) (dialect, error) {
	switch driver {
	case DriverMySQL:
		return dialect{
			schema: fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (k VARCHAR(191) NOT NULL PRIMARY KEY, v LONGTEXT NOT NULL, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP)", table),
			get:    fmt.Sprintf("SELECT v FROM %s WHERE k = ?", table),
			upsert: fmt.Sprintf("INSERT INTO %s (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)", table),
			del:    fmt.Sprintf("DELETE FROM %s WHERE k = ?", table),
		}, nil
	case DriverPostgres:
		return dialect{
			schema: fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (k TEXT PRIMARY KEY, v TEXT NOT NULL, updated_at TIMESTAMPTZ NOT NULL DEFAULT now())", table),
			get:    fmt.Sprintf("SELECT v FROM %s WHERE k = $1", table),
			upsert: fmt.Sprintf("INSERT INTO %s (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = now()", table),
			del:    fmt.Sprintf("DELETE FROM %s WHERE k = $1", table),
		}, nil
	}
	return dialect{}, fmt.Errorf("%w: sql driver %q", ErrUnknownBackend, driver)
}

// SQLStore keeps the key-value pairs in a single two-column table.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

func OpenSQLStore(ctx context.Context, driver, dsn, table string) (*SQLStore, error) {
	if table == "" {
		table = "kv_store"
	}
	d, err := dialectFor(driver, table)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	s := &SQLStore{db: db, d: d}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.d.schema)
	return err
}

func (s *SQLStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, s.d.get, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if _, err := s.db.ExecContext(ctx, s.d.upsert, key, string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.d.del, key)
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
