// Package database owns the SQLite storage engine: connection setup, schema,
// and the additive migration primitive. Constraints live in the schema on
// purpose — cascading note deletion, set-null on series deletion, the status
// and rating checks, and the case-insensitive unique series name are enforced
// by the engine, not by application code.
package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB

	path string
}

// NewDatabase opens (creating if needed) the SQLite database at dbPath with
// WAL journaling and foreign keys enabled, then applies the schema. Safe to
// call on an existing database: table creation is IF NOT EXISTS and column
// additions are no-ops when the column is already present.
func NewDatabase(dbPath string) (*Database, error) {
	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000&_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	// WAL allows concurrent readers alongside a single writer.
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	database := &Database{DB: db, path: dbPath}
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)
	return database, nil
}

func (d *Database) Path() string {
	return d.path
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			author     TEXT,
			genre      TEXT,
			status     TEXT DEFAULT 'unread' CHECK(status IN ('unread', 'reading', 'read')),
			rating     INTEGER CHECK(rating IS NULL OR (rating >= 1 AND rating <= 5)),
			cover_url  TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS series (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
			total_books INTEGER,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			book_id    INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if err := d.DB.Exec(stmt).Error; err != nil {
			return err
		}
	}

	// Columns added after the initial schema shipped. Kept additive so that
	// databases created by any prior version migrate forward without data
	// loss.
	additive := []struct {
		table, column, ddl string
	}{
		{"books", "series_id", "INTEGER REFERENCES series(id) ON DELETE SET NULL"},
		{"books", "series_position", "REAL"},
		{"books", "page_count", "INTEGER"},
		{"books", "description", "TEXT"},
	}
	for _, c := range additive {
		if err := d.AddColumnIfMissing(c.table, c.column, c.ddl); err != nil {
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_notes_book_id ON notes(book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_books_series_id ON books(series_id)`,
	}
	for _, stmt := range indexes {
		if err := d.DB.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// AddColumnIfMissing adds a nullable column to an existing table, treating an
// already-present column as a no-op. SQLite has no ADD COLUMN IF NOT EXISTS,
// so the duplicate-column error is the signal that the migration already ran.
func (d *Database) AddColumnIfMissing(table, column, ddl string) error {
	err := d.DB.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, ddl)).Error
	if err != nil && strings.Contains(err.Error(), "duplicate column name") {
		return nil
	}
	return err
}
