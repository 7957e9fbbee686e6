package store

import (
	"context"
	"log"
	"time"

	"pbihub/internal/errors"
	"pbihub/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the record store and brings its schema up to date.
// driver is "sqlite3" or "postgres".
func Open(ctx context.Context, driver, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to "+driver, err)
	}

	if driver == "sqlite3" {
		// sqlite serialises writers; a single connection also keeps
		// in-memory databases alive across calls.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.DatabaseError("failed to migrate record store", err)
	}
	log.Printf("[Store] %s record store ready (schema %s)", driver, runner.Version())
	return db, nil
}
