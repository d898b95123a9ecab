package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         VARCHAR(36) PRIMARY KEY,
	email      TEXT        NOT NULL UNIQUE,
	password   TEXT        NOT NULL,
	name       TEXT        NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS patients (
	id                 VARCHAR(36) PRIMARY KEY,
	user_id            VARCHAR(36) NOT NULL,
	name               TEXT        NOT NULL,
	age                INTEGER     NOT NULL,
	gender             VARCHAR(10) NOT NULL,
	history            TEXT        NOT NULL DEFAULT '',
	symptoms           TEXT        NOT NULL DEFAULT '',
	tests              TEXT        NOT NULL DEFAULT '',
	allergies          TEXT        NOT NULL DEFAULT '',
	possible_condition TEXT        NOT NULL DEFAULT '',
	recommendations    TEXT        NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_patients_user_created
	ON patients (user_id, created_at DESC);
`

// Open connects to PostgreSQL and bootstraps the schema.
func Open(databaseURL string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return conn, nil
}
