package pg

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "sql/migrations"

var (
	//go:embed sql/migrations/*.sql
	migrations embed.FS

	//go:embed sql/seed.sql
	seedScript string

	// goose keeps its settings in package globals.
	gooseMu sync.Mutex

	seededTables = []string{"customers", "products", "orders", "order_items"}
)

// SeedScript returns the SQL used by Seed.
func SeedScript() string {
	return seedScript
}

// SeededTables returns the tables populated by Seed, parents first.
func SeededTables() []string {
	return append([]string(nil), seededTables...)
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db *sql.DB, logger Logger) error {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log.With(logger, "component", "goose")})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("unable to set migration dialect: %v", err)
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("unable to apply migrations: %v", err)
	}

	return nil
}

// Seed inserts the baseline rows. The script holds several statements, so it
// is sent without arguments as one simple query.
func Seed(ctx context.Context, db execer) error {
	if _, err := db.ExecContext(ctx, seedScript); err != nil {
		return fmt.Errorf("unable to seed database: %v", err)
	}

	return nil
}

// truncate empties every seeded table.
func truncate(ctx context.Context, db execer) error {
	quoted := make([]string, len(seededTables))
	for i, t := range seededTables {
		quoted[i] = pq.QuoteIdentifier(t)
	}

	query := fmt.Sprintf(`TRUNCATE TABLE %s RESTART IDENTITY CASCADE;`, strings.Join(quoted, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("unable to truncate seeded tables: %v", err)
	}

	return nil
}

type gooseLogger struct {
	logger log.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Log("msg", strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Log("err", strings.TrimSpace(fmt.Sprintf(format, v...)))
}
