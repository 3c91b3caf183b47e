// Package storage bootstraps the PostgreSQL connection shared by the
// area-specific stores.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"agrisurvey/internal/platform/config"
)

// Open connects to PostgreSQL via the pgx driver and verifies the connection.
func Open(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables the stores expect. Idempotent so it can run
// on every boot.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS questionnaires (
			id         TEXT PRIMARY KEY,
			statut     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			doc        JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS questionnaires_statut_idx ON questionnaires (statut)`,
		`CREATE TABLE IF NOT EXISTS producteurs (
			id                  TEXT PRIMARY KEY,
			status_verification TEXT NOT NULL,
			region              TEXT NOT NULL DEFAULT '',
			cultures            TEXT[] NOT NULL DEFAULT '{}',
			created_at          TIMESTAMPTZ NOT NULL,
			updated_at          TIMESTAMPTZ NOT NULL,
			doc                 JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS producteurs_status_idx ON producteurs (status_verification)`,
		`CREATE TABLE IF NOT EXISTS audit_events (
			id         TEXT PRIMARY KEY,
			entity_id  TEXT NOT NULL,
			occurred   TIMESTAMPTZ NOT NULL,
			doc        JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS audit_events_entity_idx ON audit_events (entity_id, occurred)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
