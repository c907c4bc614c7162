package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gatherly/notify/core"
	"github.com/gatherly/notify/db"
	"github.com/gatherly/notify/modules/notifications"
	"github.com/gatherly/notify/pkg/config"
	"github.com/gatherly/notify/pkg/httpserver"
	"github.com/gatherly/notify/pkg/logger"
	"github.com/gatherly/notify/pkg/mongo"
	"github.com/gatherly/notify/pkg/pg"
	"github.com/gatherly/notify/pkg/redis"
	"github.com/gatherly/notify/pkg/requestid"
)

type appConfig struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	LogFormat  string `env:"LOG_FORMAT"`
	Env        string `env:"APP_ENV" envDefault:"production"`

	// Storage selects the persistence backend: memory, postgres, or mongo.
	Storage string `env:"STORAGE" envDefault:"memory"`

	// RedisURL enables the unread-count cache when set.
	RedisURL string `env:"REDIS_URL"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(buildLogOptions(cfg)...)
	logger.SetAsDefault(log)

	storage, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.RedisURL != "" {
		rdb, err := redis.Connect(ctx, redis.Config{ConnectionURL: cfg.RedisURL})
		if err != nil {
			return err
		}
		defer rdb.Close() //nolint:errcheck
		storage = notifications.NewCountCache(storage, rdb)
	}

	svc, err := notifications.NewService(storage, notifications.WithServiceLogger(log))
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_ = core.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Mount("/", notifications.Router(svc, bearerIdentity))

	srv, err := httpserver.New(cfg.ListenAddr, r, httpserver.WithLogger(log))
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// buildLogOptions picks exactly one logging profile from APP_ENV and lets an
// explicit LOG_FORMAT override the profile's format.
func buildLogOptions(cfg appConfig) []logger.Option {
	opts := []logger.Option{
		logger.WithContextExtractors(requestid.LogExtractor()),
	}
	if cfg.Env == "development" {
		opts = append(opts, logger.WithDevelopment("notifyd"))
	} else {
		opts = append(opts, logger.WithProduction("notifyd"))
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return opts
}

// buildStorage constructs the configured persistence backend and returns
// a cleanup releasing its connections.
func buildStorage(ctx context.Context, cfg appConfig) (notifications.Storage, func(), error) {
	switch cfg.Storage {
	case "memory":
		return notifications.NewMemoryStorage(), func() {}, nil

	case "postgres":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		migrations, err := fs.Sub(db.Migrations, "migrations")
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, migrations, nil); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return notifications.NewPostgresStorage(pool), pool.Close, nil

	case "mongo":
		var mgCfg mongo.Config
		if err := config.Load(&mgCfg); err != nil {
			return nil, nil, err
		}
		client, database, err := mongo.Connect(ctx, mgCfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.WithoutCancel(ctx)) }
		storage := notifications.NewMongoStorage(database)
		if err := storage.EnsureIndexes(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		return storage, cleanup, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}

// bearerIdentity treats the bearer token as an opaque user id. Real
// deployments sit behind the auth layer, which swaps this for a session
// or token-introspection lookup.
func bearerIdentity(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return "", fmt.Errorf("missing bearer token")
	}
	return token, nil
}
