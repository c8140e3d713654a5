// Package pg opens a pgx connection pool with retries, applies goose
// migrations from an embedded filesystem and maps common driver errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations.FS, log); err != nil {
//		return err
//	}
//
// Settings come from PG_* environment variables. An empty PG_CONN_URL means
// the service runs without a database; callers check Config.Enabled.
package pg
