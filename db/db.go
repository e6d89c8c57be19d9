package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

const (
	sqlCreateKvTable = `CREATE TABLE IF NOT EXISTS kv_store(
		key TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	sqlSelectValue = `SELECT value FROM kv_store WHERE key = ?`
	sqlUpsertValue = `INSERT INTO kv_store(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	sqlDeleteValue = `DELETE FROM kv_store WHERE key = ?`
	sqlSelectKeys  = `SELECT key FROM kv_store ORDER BY key`
)

type DB struct {
	db *sql.DB
}

var (
	dbInstance *DB
	dbOnce     sync.Once
	dbErr      error
)

// Driver and Path must be set before the first GetDB call.
var (
	Driver = "sqlite"
	Path   = "database.db"
)

// GetDB returns the process-wide database, opening it on first use.
func GetDB() *DB {
	dbOnce.Do(func() {
		dbInstance, dbErr = Open(Driver, Path)
		if dbErr != nil {
			log.Fatalf("Could not open database %s (%s): %v", Path, Driver, dbErr)
		}
	})
	return dbInstance
}

// Open connects with the named driver ("sqlite" is pure Go, "sqlite3" uses cgo)
// and runs migrations.
func Open(driver, path string) (*DB, error) {
	dsn := path
	if driver == "sqlite3" && path != ":memory:" {
		dsn = "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL"
	} else if driver == "sqlite" && path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", driver, err)
	}
	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)
	d := &DB{db: conn}
	if err := d.Migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Migrate() error {
	if _, err := d.db.Exec(sqlCreateKvTable); err != nil {
		return fmt.Errorf("creating kv_store table: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// ReadValue returns the raw value for key, or ErrNotFound.
func (d *DB) ReadValue(key string) (error, string) {
	var value string
	err := d.db.QueryRow(sqlSelectValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound, ""
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err), ""
	}
	return nil, value
}

func (d *DB) WriteValue(key, value string) error {
	if _, err := d.db.Exec(sqlUpsertValue, key, value); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// DeleteValues removes all given keys in one transaction. Missing keys are ignored.
func (d *DB) DeleteValues(keys ...string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := tx.Exec(sqlDeleteValue, k); err != nil {
			tx.Rollback()
			return fmt.Errorf("deleting %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (d *DB) ReadKeys() (error, []string) {
	rows, err := d.db.Query(sqlSelectKeys)
	if err != nil {
		return err, nil
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return err, nil
		}
		keys = append(keys, k)
	}
	return rows.Err(), keys
}
