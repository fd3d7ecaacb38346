package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/studentdesk/studentdesk/internal/config"
	"github.com/studentdesk/studentdesk/internal/pkg/dberrors"
)

const createUsersTableSQL = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username VARCHAR(50) UNIQUE NOT NULL,
	email VARCHAR(100) UNIQUE NOT NULL,
	password VARCHAR(255) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const createStudentTableSQL = `
CREATE TABLE IF NOT EXISTS student (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	age INT NOT NULL,
	course VARCHAR(50) NOT NULL,
	year INT NOT NULL,
	gender VARCHAR(20) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// BootstrapStatus records the outcome of the one-time schema bootstrap. It is
// surfaced through the health endpoint only; request handling never depends on it.
type BootstrapStatus struct {
	Initialized bool
	Err         error
}

// EnsureSchema creates the application database and both tables if they are
// absent. It uses a dedicated connection, independent of the pool, and is
// best-effort: the caller logs the returned error and keeps serving.
func EnsureSchema(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := ensureDatabase(ctx, cfg, lgr); err != nil {
		return err
	}

	conn, err := pgx.Connect(ctx, cfg.GetPostgresConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect for schema bootstrap: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, createUsersTableSQL); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	if _, err := conn.Exec(ctx, createStudentTableSQL); err != nil {
		return fmt.Errorf("failed to create student table: %w", err)
	}

	lgr.Info().Str("database", cfg.Database.DBName).Msg("Database and tables verified")
	return nil
}

// ensureDatabase creates the application database via the maintenance database
// if it does not exist yet. CREATE DATABASE has no IF NOT EXISTS, so existence
// is checked against pg_database first.
func ensureDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) error {
	conn, err := pgx.Connect(ctx, cfg.GetAdminConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`,
		cfg.Database.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}

	if exists {
		return nil
	}

	// Identifier, not a bind parameter; the name comes from trusted config.
	_, err = conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %s`, pgx.Identifier{cfg.Database.DBName}.Sanitize()))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			// Lost a race with a concurrent bootstrap; the database exists.
			return nil
		}
		return fmt.Errorf("failed to create database %s: %w", cfg.Database.DBName, err)
	}

	lgr.Info().Str("database", cfg.Database.DBName).Msg("Database created")
	return nil
}
