package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrNotFound = errors.New("not found")
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// el dashboard solo lee; el importer escribe en una transacción
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS animals (
	id                        BIGSERIAL PRIMARY KEY,
	rec_num                   INTEGER NOT NULL DEFAULT 0,
	age_upon_outcome          TEXT NOT NULL DEFAULT '',
	animal_id                 TEXT NOT NULL,
	animal_type               TEXT NOT NULL DEFAULT '',
	breed                     TEXT NOT NULL DEFAULT '',
	color                     TEXT NOT NULL DEFAULT '',
	date_of_birth             TEXT NOT NULL DEFAULT '',
	datetime                  TEXT NOT NULL DEFAULT '',
	monthyear                 TEXT NOT NULL DEFAULT '',
	name                      TEXT NOT NULL DEFAULT '',
	outcome_subtype           TEXT NOT NULL DEFAULT '',
	outcome_type              TEXT NOT NULL DEFAULT '',
	sex_upon_outcome          TEXT NOT NULL DEFAULT '',
	location_lat              DOUBLE PRECISION,
	location_long             DOUBLE PRECISION,
	age_upon_outcome_in_weeks DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS animals_animal_id_idx ON animals (animal_id);
CREATE INDEX IF NOT EXISTS animals_type_sex_idx ON animals (animal_type, sex_upon_outcome);
`

// EnsureSchema crea la tabla animals si no existe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
