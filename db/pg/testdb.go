package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/go-kit/log"
)

var (
	ErrNotSeeded = errors.New("database was created without seed")
)

// TestDB is a throwaway database created on a shared server and dropped by
// Close.
type TestDB struct {
	DB     *sql.DB
	Name   string
	Config *Config

	admin  *sql.DB
	seeded bool
	closed bool
	logger Logger
}

type settings struct {
	name   string
	seed   bool
	logger Logger
}

type option func(s *settings)

// WithName replaces the generated database name. An existing database with
// that name is dropped first.
func WithName(name string) option {
	return func(s *settings) {
		s.name = name
	}
}

func WithoutSeed() option {
	return func(s *settings) {
		s.seed = false
	}
}

func WithLogger(l Logger) option {
	return func(s *settings) {
		s.logger = l
	}
}

// Setup creates a fresh database on the server described by cfg, applies the
// schema and, unless WithoutSeed is given, runs the seed script.
func Setup(ctx context.Context, cfg *Config, opts ...option) (*TestDB, error) {
	s := &settings{
		name:   NewDatabaseName("testdb"),
		seed:   true,
		logger: log.NewJSONLogger(log.NewSyncWriter(os.Stderr)),
	}

	for _, o := range opts {
		o(s)
	}

	logger := log.With(s.logger, "component", "testdb", "database", s.name)

	admin, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := Drop(ctx, admin, s.name); err != nil {
		admin.Close()
		return nil, err
	}

	if err := Create(ctx, admin, s.name); err != nil {
		admin.Close()
		return nil, err
	}

	t := &TestDB{
		Name:   s.name,
		Config: cfg.WithDatabase(s.name),
		admin:  admin,
		seeded: s.seed,
		logger: logger,
	}

	if t.DB, err = Connect(t.Config); err != nil {
		t.Close(ctx)
		return nil, err
	}

	if err := Migrate(ctx, t.DB, logger); err != nil {
		t.Close(ctx)
		return nil, err
	}

	if s.seed {
		if err := Seed(ctx, t.DB); err != nil {
			t.Close(ctx)
			return nil, err
		}
	}

	logger.Log("msg", "test database ready", "seeded", s.seed)

	return t, nil
}

// Reset empties the seeded tables and seeds them again.
func (t *TestDB) Reset(ctx context.Context) error {
	if !t.seeded {
		return ErrNotSeeded
	}

	if err := truncate(ctx, t.DB); err != nil {
		return err
	}

	return Seed(ctx, t.DB)
}

// Close disconnects from the test database and drops it. Later calls are
// no-ops.
func (t *TestDB) Close(ctx context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true

	if t.DB != nil {
		if err := t.DB.Close(); err != nil {
			t.logger.Log("err", fmt.Errorf("unable to close test database: %v", err))
		}
	}

	defer t.admin.Close()

	if err := Drop(ctx, t.admin, t.Name); err != nil {
		return err
	}

	t.logger.Log("msg", "test database dropped")

	return nil
}
