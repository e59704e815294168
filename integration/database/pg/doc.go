// Package pg stores per-tenant storage credentials in PostgreSQL.
//
// It wraps pgx connection pooling with retrying Connect and Healthcheck,
// applies the embedded schema with goose through Migrate, and exposes
// CredentialsProvider, a storage.CredentialsProvider backed by the
// storage_credentials table.
//
// Usage:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, slog.Default()); err != nil {
//		log.Fatal(err)
//	}
//
//	provider := pg.NewCredentialsProvider(pool)
//	client, err := s3.New(provider)
//
// # Transactions
//
// Reads and writes join a transaction attached to the context, so tenant
// provisioning can be atomic with the caller's own writes:
//
//	err := pg.InTx(ctx, pool, func(ctx context.Context) error {
//		if _, err := createTenant(ctx, id); err != nil {
//			return err
//		}
//		return provider.SaveCredentials(ctx, id, creds)
//	})
//
// Unknown tenants resolve to (nil, nil), which the storage client reports as
// storage.ErrNotConfigured.
package pg
