package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	username       TEXT NOT NULL UNIQUE,
	email          TEXT NOT NULL UNIQUE COLLATE NOCASE,
	first_name     TEXT NOT NULL DEFAULT '',
	password_hash  TEXT NOT NULL,
	is_active      INTEGER NOT NULL DEFAULT 0,
	is_staff       INTEGER NOT NULL DEFAULT 0,
	is_superuser   INTEGER NOT NULL DEFAULT 0,
	is_verified    INTEGER NOT NULL DEFAULT 0,
	date_joined    INTEGER NOT NULL,
	last_login     INTEGER NOT NULL DEFAULT 0,
	otp            TEXT NOT NULL DEFAULT '',
	otp_expires_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS internships (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	mentor      TEXT NOT NULL,
	duration    TEXT NOT NULL,
	stipend     TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	skills      TEXT NOT NULL DEFAULT '',
	user_id     INTEGER NOT NULL,
	username    TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name        TEXT NOT NULL,
	last_name         TEXT NOT NULL DEFAULT '',
	address           TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL,
	phone_number      TEXT NOT NULL DEFAULT '',
	college_name      TEXT NOT NULL DEFAULT '',
	department        TEXT NOT NULL DEFAULT '',
	custom_department TEXT NOT NULL DEFAULT '',
	roll_no           TEXT NOT NULL DEFAULT '',
	course            TEXT NOT NULL DEFAULT '',
	year_of_study     TEXT NOT NULL DEFAULT '',
	skills            TEXT NOT NULL DEFAULT '',
	addskills         TEXT NOT NULL DEFAULT '',
	user_id           INTEGER NOT NULL,
	i_id              INTEGER NOT NULL,
	status            TEXT NOT NULL,
	resume            TEXT NOT NULL DEFAULT '',
	id_card           TEXT NOT NULL DEFAULT '',
	submitted_at      INTEGER NOT NULL
);
`

// DB is a SQLite-backed store for the portal repositories
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Users() *UserRepo {
	return &UserRepo{db: d.db}
}

func (d *DB) Internships() *InternshipRepo {
	return &InternshipRepo{db: d.db}
}

func (d *DB) Applications() *ApplicationRepo {
	return &ApplicationRepo{db: d.db}
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

type scanner interface {
	Scan(dest ...any) error
}
