package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/claude/restbell/internal/timer"
	_ "modernc.org/sqlite"
)

// Fixed key names for the persisted countdown, string-encoded exactly like
// the localStorage contract the web client uses.
const (
	keySeconds = "rest_timer_seconds"
	keyRunning = "rest_timer_running"
)

// DB is the durable local store for rest-timer state: a small SQLite
// database that survives restarts but never leaves the machine.
type DB struct {
	db *sql.DB
}

// Compile-time check: *DB satisfies the timer persistence contract.
var _ timer.Store = (*DB)(nil)

// Open opens (or creates) the state database at dir/state.db. The schema
// is managed by RunMigrations, which must run first.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", Path(dir))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging state db: %w", err)
	}
	return &DB{db: db}, nil
}

// Path returns the state database file under dir.
func Path(dir string) string {
	return filepath.Join(dir, "state.db")
}

// Load returns the persisted countdown. Absent, non-numeric or negative
// values are treated as no prior state and rehydrate as 0 / stopped.
func (s *DB) Load() (int, bool, error) {
	values, err := s.readAll()
	if err != nil {
		return 0, false, err
	}

	seconds := 0
	if raw, ok := values[keySeconds]; ok {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n >= 0 {
			seconds = n
		}
	}
	running := values[keyRunning] == "true"
	return seconds, running, nil
}

// Save writes both durable fields in one statement.
func (s *DB) Save(seconds int, running bool) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO timer_state (key, value) VALUES (?, ?), (?, ?)`,
		keySeconds, strconv.Itoa(seconds),
		keyRunning, strconv.FormatBool(running),
	)
	if err != nil {
		return fmt.Errorf("saving timer state: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) readAll() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM timer_state`)
	if err != nil {
		return nil, fmt.Errorf("reading timer state: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning timer state: %w", err)
		}
		values[k] = v
	}
	return values, rows.Err()
}
