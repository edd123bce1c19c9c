package pg

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Container is a Postgres server running in Docker for the lifetime of a test
// run.
type Container struct {
	container *postgres.PostgresContainer
	config    *Config
}

// StartContainer runs cfg.Image with cfg's credentials and waits until the
// server accepts connections.
func StartContainer(ctx context.Context, cfg *Config) (*Container, error) {
	image := cfg.Image
	if image == "" {
		image = DefaultImage
	}

	ctr, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to start postgres container: %v", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx)
		return nil, fmt.Errorf("unable to resolve container host: %v", err)
	}

	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		ctr.Terminate(ctx)
		return nil, fmt.Errorf("unable to resolve container port: %v", err)
	}

	mapped := *cfg
	mapped.Image = image
	mapped.Host = host
	mapped.Port = port.Int()
	mapped.SSLEnabled = false

	return &Container{container: ctr, config: &mapped}, nil
}

// Config returns the settings needed to reach the container from the host.
func (c *Container) Config() *Config {
	return c.config
}

func (c *Container) Terminate(ctx context.Context) error {
	if err := c.container.Terminate(ctx); err != nil {
		return fmt.Errorf("unable to terminate postgres container: %v", err)
	}

	return nil
}
