package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	// ErrInvalidConnString indicates the MongoDB URI could not be parsed.
	ErrInvalidConnString = errors.New("invalid mongodb connection string")
	// ErrFailedToConnect indicates the server was unreachable after all
	// retry attempts.
	ErrFailedToConnect = errors.New("failed to connect to mongodb")
	// ErrMissingDatabase indicates no database name was configured.
	ErrMissingDatabase = errors.New("missing mongodb database name")
)

// Config holds MongoDB connection settings, loadable from the environment
// via pkg/config.
type Config struct {
	ConnectionURL  string        `env:"MONGODB_URL,required"`
	Database       string        `env:"MONGODB_DATABASE,required"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// Connect establishes a MongoDB client and verifies connectivity with
// retry, returning the configured database handle alongside the client.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.Database == "" {
		return nil, nil, ErrMissingDatabase
	}

	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidConnString, err)
	}

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				_ = client.Disconnect(context.WithoutCancel(ctx))
				return nil, nil, errors.Join(ErrFailedToConnect, ctx.Err(), lastErr)
			case <-time.After(cfg.RetryInterval):
			}
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			lastErr = err
			continue
		}
		return client, client.Database(cfg.Database), nil
	}

	_ = client.Disconnect(context.WithoutCancel(ctx))
	return nil, nil, errors.Join(ErrFailedToConnect, lastErr)
}

// IsNotFoundError reports whether err is the driver's no-documents error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsDuplicateKeyError reports whether err is a duplicate key write error.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
