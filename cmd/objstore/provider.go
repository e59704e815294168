package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/objstore/core/config"
	"github.com/dmitrymomot/objstore/core/health"
	"github.com/dmitrymomot/objstore/core/storage"
	"github.com/dmitrymomot/objstore/integration/database/mongo"
	"github.com/dmitrymomot/objstore/integration/database/pg"
	"github.com/dmitrymomot/objstore/integration/database/redis"
	"github.com/dmitrymomot/objstore/integration/storage/s3"
)

// dependencies are the resolved credentials source and its backing services.
type dependencies struct {
	provider storage.CredentialsProvider
	checks   []health.Check
	closers  []func()
}

// close releases connections in reverse order of opening.
func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// buildDependencies resolves the configured credentials source, optionally
// wrapped in a Redis cache. The result must be closed even on error.
func buildDependencies(ctx context.Context, app appConfig, s3cfg s3.Config, log *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}
	provider, err := deps.source(ctx, app, s3cfg, log)
	if err != nil {
		return deps, err
	}

	if app.CacheCredentials {
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return deps, err
		}
		rdb, err := redis.Connect(ctx, cfg)
		if err != nil {
			return deps, err
		}
		deps.closers = append(deps.closers, func() { _ = rdb.Close() })
		deps.checks = append(deps.checks, health.Check{Name: "redis", Probe: redis.Healthcheck(rdb)})
		provider = redis.NewCachedProvider(rdb, provider, append(cfg.CacheOptions(), redis.WithLogger(log))...)
	}

	deps.provider = provider
	deps.checks = append(deps.checks, health.Check{
		Name: "credentials",
		Probe: func(ctx context.Context) error {
			c, err := provider.GetS3Credentials(ctx, app.Tenant)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("%w: %s", storage.ErrNotConfigured, app.Tenant)
			}
			return c.Validate()
		},
	})
	return deps, nil
}

func (d *dependencies) source(ctx context.Context, app appConfig, s3cfg s3.Config, log *slog.Logger) (storage.CredentialsProvider, error) {
	switch app.Source {
	case "env":
		creds, err := s3cfg.Credentials()
		if err != nil {
			return nil, err
		}
		return storage.NewSingleTenantProvider(*creds), nil

	case "aws":
		p, err := s3.LoadAWSProvider(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		return p, nil

	case "file":
		p, err := storage.LoadFileProvider(app.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return p, nil

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, pool.Close)
		d.checks = append(d.checks, health.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})
		if err := pg.Migrate(ctx, pool, log); err != nil {
			return nil, err
		}
		return pg.NewCredentialsProvider(pool), nil

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := mongo.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func() { _ = client.Disconnect(context.WithoutCancel(ctx)) })
		d.checks = append(d.checks, health.Check{Name: "mongo", Probe: mongo.Healthcheck(client)})
		return mongo.NewCredentialsProviderFromClient(client, cfg), nil

	default:
		return nil, fmt.Errorf("%w: unknown credentials source %q", storage.ErrInvalidConfig, app.Source)
	}
}
