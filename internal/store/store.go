package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

const highscoreKey = "highscore"

// DB wraps the SQLite connection holding settings and finished runs.
type DB struct {
	conn *sql.DB
}

// RunRow is one finished life.
type RunRow struct {
	ID        int64
	Seed      int64
	Score     int
	Level     int
	Ticks     int
	Outcome   string
	CreatedAt time.Time
}

// Open opens (or creates) the database at path. ":memory:" gives a private
// in-process database.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// one connection, so ":memory:" is a single database
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 0,
		ticks INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		log.Printf("store: migration error: %v", err)
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// GetSetting returns the value stored under key and whether it exists.
func (db *DB) GetSetting(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

// SetSetting inserts or replaces key.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// LoadHighscore implements sim.HighscoreStore. A missing row is zero.
func (db *DB) LoadHighscore() (int, error) {
	v, ok, err := db.GetSetting(highscoreKey)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("highscore %q: %w", v, err)
	}
	return n, nil
}

// SaveHighscore implements sim.HighscoreStore.
func (db *DB) SaveHighscore(score int) error {
	return db.SetSetting(highscoreKey, strconv.Itoa(score))
}

// RecordRun stores a finished life.
func (db *DB) RecordRun(r sim.RunReport) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO runs (seed, score, level, ticks, outcome) VALUES (?, ?, ?, ?, ?)",
		r.Seed, r.Score, r.Level, r.Ticks, r.Outcome.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return res.LastInsertId()
}

// TopRuns returns up to limit runs, best score first, oldest first on ties.
func (db *DB) TopRuns(limit int) ([]RunRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, seed, score, level, ticks, outcome, created_at FROM runs ORDER BY score DESC, id ASC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.Seed, &r.Score, &r.Level, &r.Ticks, &r.Outcome, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
