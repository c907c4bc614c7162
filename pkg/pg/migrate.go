package pg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate runs all pending goose migrations from fsys against the pool's
// database. Migration progress is logged through log.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log *slog.Logger) error {
	if pool == nil {
		return ErrNilPool
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close() //nolint:errcheck // closing the adapter, not the pool

	goose.SetBaseFS(fsys)
	goose.SetLogger(newGooseLogger(log))
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToMigrate, err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrFailedToMigrate, err)
	}
	return nil
}

type gooseLogger struct {
	log *slog.Logger
}

func newGooseLogger(log *slog.Logger) goose.Logger {
	if log == nil {
		log = slog.Default()
	}
	return &gooseLogger{log: log}
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}
