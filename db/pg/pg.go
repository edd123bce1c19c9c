package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/DATA-DOG/go-txdb"
	"github.com/go-kit/log"
	"github.com/lib/pq"
	"github.com/neighborly/go-pghelpers"
	"github.com/rs/xid"
)

type Logger log.Logger

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var (
	txdbMu      sync.Mutex
	txdbDrivers = map[string]string{}
)

// Connect opens a connection pool to the database described by cfg.
func Connect(cfg *Config) (*sql.DB, error) {
	db, err := pghelpers.ConnectPostgres(cfg.PostgresConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %s: %v", cfg.Database, err)
	}

	return db, nil
}

// OpenIsolated opens a handle whose work runs inside a single transaction
// that is rolled back when the handle is closed. Handles opened with the same
// id share that transaction.
func OpenIsolated(cfg *Config, id string) (*sql.DB, error) {
	dsn := cfg.GenerateAddress()

	txdbMu.Lock()
	driverName, ok := txdbDrivers[dsn]
	if !ok {
		driverName = fmt.Sprintf("pgtxdb_%d", len(txdbDrivers))
		txdb.Register(driverName, "postgres", dsn)
		txdbDrivers[dsn] = driverName
	}
	txdbMu.Unlock()

	db, err := sql.Open(driverName, id)
	if err != nil {
		return nil, fmt.Errorf("unable to open isolated connection %s: %v", id, err)
	}

	return db, nil
}

// NewDatabaseName returns a database name that is unique to this call.
func NewDatabaseName(prefix string) string {
	if prefix == "" {
		prefix = "testdb"
	}

	return strings.ToLower(fmt.Sprintf("%s_%s", prefix, xid.New().String()))
}

// Create creates the named database using an admin connection.
func Create(ctx context.Context, admin execer, name string) error {
	query := fmt.Sprintf(`CREATE DATABASE %s;`, pq.QuoteIdentifier(name))

	if _, err := admin.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("unable to create database %s: %v", name, err)
	}

	return nil
}

// Drop removes the named database if it exists.
func Drop(ctx context.Context, admin execer, name string) error {
	query := fmt.Sprintf(`DROP DATABASE IF EXISTS %s;`, pq.QuoteIdentifier(name))

	if _, err := admin.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("unable to drop database %s: %v", name, err)
	}

	return nil
}
