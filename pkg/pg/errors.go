package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInvalidConnString indicates the connection string could not be parsed.
	ErrInvalidConnString = errors.New("invalid postgres connection string")
	// ErrFailedToConnect indicates the database was unreachable after all
	// retry attempts.
	ErrFailedToConnect = errors.New("failed to connect to postgres")
	// ErrFailedToMigrate indicates migrations could not be applied.
	ErrFailedToMigrate = errors.New("failed to apply migrations")
	// ErrNilPool indicates a nil connection pool was passed.
	ErrNilPool = errors.New("nil connection pool")
)

// IsNotFoundError reports whether err is pgx's no-rows error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolationError reports whether err is a unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolationError reports whether err is a foreign key
// violation (SQLSTATE 23503).
func IsForeignKeyViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
