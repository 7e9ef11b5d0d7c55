// Package pg connects to PostgreSQL through a pgx pool and layers the rest of
// the persistence stack on top of it.
//
// Connect opens the pool with retries, Migrate applies goose migrations from
// an embedded filesystem, and Gorm opens a *gorm.DB sharing the same pool:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations.FS, log); err != nil { ... }
//	db, err := pg.Gorm(pool)
//
// Healthcheck returns a probe suitable for readiness endpoints.
package pg
