package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables if they do not exist yet. Every statement in the
// schema is idempotent so it is safe to run on every start.
func Migrate(ctx context.Context, dbURL string) error {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("cannot open db for migration, %w", err)
	}
	defer db.Close()

	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("cannot reach db for migration, %w", err)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("cannot apply schema, %w", err)
	}

	log.Info("database schema is up to date")
	return nil
}
