// Package pg provides disposable PostgreSQL databases for integration tests.
//
// A server is either started with `docker compose up -d` from the repository
// root, whose init scripts apply the schema and seed to the default database,
// or launched from Go with StartContainer. Each test then gets its own database
// on that server:
//
//	cfg, err := pg.LoadConfig()
//	if err != nil {
//	    panic(err)
//	}
//
//	testDB, err := pg.Setup(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer testDB.Close(ctx)
//
// Setup migrates the new database with the embedded goose migrations and runs
// the seed script unless WithoutSeed is passed. Reset restores the seeded rows,
// and OpenIsolated hands out connections whose changes are rolled back on
// Close.
//
// Connection settings come from POSTGRES_HOST, POSTGRES_PORT,
// POSTGRES_USERNAME, POSTGRES_PASSWORD, POSTGRES_DATABASE and POSTGRES_SSL.
// TESTDB_IMAGE selects the image used by StartContainer.
package pg
