// Package pg provides PostgreSQL connectivity built on pgx: pooled
// connections with retry, goose migrations from an embedded filesystem,
// and error classification helpers.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrationsFS, log); err != nil {
//		return err
//	}
package pg
