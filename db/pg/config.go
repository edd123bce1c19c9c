package pg

import (
	"fmt"

	"github.com/neighborly/go-pghelpers"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	keyHost     = "POSTGRES_HOST"
	keyPort     = "POSTGRES_PORT"
	keyUsername = "POSTGRES_USERNAME"
	keyPassword = "POSTGRES_PASSWORD"
	keyDatabase = "POSTGRES_DATABASE"
	keySSL      = "POSTGRES_SSL"
	keyImage    = "TESTDB_IMAGE"

	DefaultImage = "postgres:16-alpine"
)

// Config describes how to reach the Postgres server that hosts disposable
// test databases.
type Config struct {
	pghelpers.PostgresConfig

	// Image is the Docker image started by StartContainer.
	Image string
}

// LoadConfig reads the connection settings from the environment, falling back
// to the credentials used by docker-compose.yml.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(keyHost, "localhost")
	v.SetDefault(keyPort, 5432)
	v.SetDefault(keyUsername, "postgres")
	v.SetDefault(keyPassword, "pgpassword")
	v.SetDefault(keyDatabase, "postgres")
	v.SetDefault(keySSL, false)
	v.SetDefault(keyImage, DefaultImage)

	port, err := cast.ToIntE(v.Get(keyPort))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %v", keyPort, err)
	}

	ssl, err := cast.ToBoolE(v.Get(keySSL))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %v", keySSL, err)
	}

	return &Config{
		PostgresConfig: pghelpers.PostgresConfig{
			Host:       v.GetString(keyHost),
			Port:       port,
			Username:   v.GetString(keyUsername),
			Password:   v.GetString(keyPassword),
			Database:   v.GetString(keyDatabase),
			SSLEnabled: ssl,
		},
		Image: v.GetString(keyImage),
	}, nil
}

// WithDatabase returns a copy of c pointing at another database on the same
// server.
func (c *Config) WithDatabase(name string) *Config {
	cp := *c
	cp.Database = name
	return &cp
}
