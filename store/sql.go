package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQL stores every key as one row of a two-column table. The same schema
// serves SQLite and Postgres; only the placeholder style differs.
type SQL struct {
	db      *sql.DB
	getStmt string
	putStmt string
}

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL
);`

// NewSQLite opens (creating if needed) a SQLite file at path.
func NewSQLite(ctx context.Context, path string) (*SQL, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return newSQL(ctx, db,
		`SELECT v FROM kv WHERE k = ?`,
		`INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`)
}

// NewPostgres connects through the pgx stdlib driver.
func NewPostgres(ctx context.Context, connStr string) (*SQL, error) {
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return newSQL(ctx, db,
		`SELECT v FROM kv WHERE k = $1`,
		`INSERT INTO kv (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v`)
}

func newSQL(ctx context.Context, db *sql.DB, getStmt, putStmt string) (*SQL, error) {
	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}
	return &SQL{db: db, getStmt: getStmt, putStmt: putStmt}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.getStmt, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(v), true, nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.putStmt, key, string(value))
	return err
}

func (s *SQL) Close() error {
	return s.db.Close()
}
