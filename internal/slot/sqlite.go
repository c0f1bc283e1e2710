package slot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode for better concurrency on read-heavy workloads.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SQLiteStore implements Store on a single slots table.
type SQLiteStore struct {
	db *sql.DB
}

// DB exposes the underlying *sql.DB connection (local-only use case).
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// NewSQLiteStore opens (or creates) a SQLite-backed slot store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStoreWithDB(db)
}

// NewSQLiteStoreWithDB allows wiring with an existing connection.
func NewSQLiteStoreWithDB(db *sql.DB) (*SQLiteStore, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS Slots (
        SlotKey   TEXT PRIMARY KEY,
        Payload   BLOB NOT NULL,
        UpdatedAt TIMESTAMP NOT NULL
    )`)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	row := s.db.QueryRowContext(ctx, `SELECT Payload FROM Slots WHERE SlotKey = ?`, key)
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *SQLiteStore) Write(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO Slots (SlotKey, Payload, UpdatedAt) VALUES (?,?,?)
        ON CONFLICT(SlotKey) DO UPDATE SET Payload = excluded.Payload, UpdatedAt = excluded.UpdatedAt`,
		key, payload, time.Now().UTC())
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM Slots WHERE SlotKey = ?`, key)
	return err
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT SlotKey FROM Slots ORDER BY SlotKey`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// HealthPing implements health.HealthPinger for the SQLite-backed store.
func (s *SQLiteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
