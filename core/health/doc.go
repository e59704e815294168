// Package health runs dependency readiness checks.
//
// Checks wrap the Healthcheck functions of the database integrations:
//
//	report := health.Readiness(ctx, log,
//		health.Check{Name: "postgres", Probe: pg.Healthcheck(pool)},
//		health.Check{Name: "redis", Probe: redis.Healthcheck(rdb)},
//	)
//	if err := report.Err(); err != nil {
//		// at least one dependency is down
//	}
package health
