// Package redis connects to Redis and caches tenant storage credentials.
//
// Connect verifies the connection with retried pings; Healthcheck returns a
// readiness probe. CachedProvider wraps any storage.CredentialsProvider so
// that hot tenants do not hit the backing database on every request:
//
//	rdb, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rdb.Close()
//
//	provider := redis.NewCachedProvider(rdb, pg.NewCredentialsProvider(pool), cfg.CacheOptions()...)
//
// Entries are stored as JSON under "<prefix><tenant id>" and expire after the
// configured TTL. Call Invalidate after rotating a tenant's keys.
package redis
