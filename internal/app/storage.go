package app

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/favboard/favboard-api/internal/api/handler"
	"github.com/favboard/favboard-api/internal/core/ports"
	"github.com/favboard/favboard-api/internal/core/service"
	"github.com/favboard/favboard-api/internal/infrastructure/db/mongo"
	"github.com/favboard/favboard-api/internal/infrastructure/db/postgres"
	"github.com/favboard/favboard-api/internal/infrastructure/db/redis"
	"github.com/favboard/favboard-api/internal/pkg/config"
)

// ErrUnknownDriver is returned for a STORAGE_DRIVER no adapter serves.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Storage bundles the repositories of the selected driver together with the
// readiness checks and the hooks that release its connections.
type Storage struct {
	Identities ports.IdentityRepository
	Posts      ports.PostRepository
	Cache      ports.PostCache
	Checks     []handler.DependencyCheck

	closers []func(ctx context.Context) error
}

// OpenStorage connects the configured database driver and, when REDIS_ADDR is
// set, the post cache.
func OpenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	s := &Storage{Cache: service.NopPostCache{}}

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		if err := s.openPostgres(ctx, cfg, log); err != nil {
			return nil, err
		}
	case config.StorageDriverMongo:
		if err := s.openMongo(ctx, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}

	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Cache = redis.NewPostCache(client, cfg.Redis.PostCacheTTL)
		s.Checks = append(s.Checks, handler.DependencyCheck{Name: "redis", Ping: redis.Ping(client)})
		s.closers = append(s.closers, closeRedis(client))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("post cache enabled")
	}

	log.Info().Str("driver", cfg.StorageDriver).Msg("storage ready")
	return s, nil
}

func (s *Storage) openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, Log: log})
	if err != nil {
		return err
	}
	s.Identities = postgres.NewIdentityRepository(db)
	s.Posts = postgres.NewPostRepository(db)
	s.Checks = append(s.Checks, handler.DependencyCheck{Name: "postgres", Ping: postgres.Ping(db)})
	s.closers = append(s.closers, func(context.Context) error { return postgres.Close(db) })
	return nil
}

func (s *Storage) openMongo(ctx context.Context, cfg *config.Config) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}
	s.Identities = mongo.NewIdentityRepository(db)
	s.Posts = mongo.NewPostRepository(db)
	s.Checks = append(s.Checks, handler.DependencyCheck{Name: "mongo", Ping: mongo.Ping(client)})
	s.closers = append(s.closers, client.Disconnect)
	return nil
}

// Close releases every connection in reverse order of opening.
func (s *Storage) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func closeRedis(client *goredis.Client) func(context.Context) error {
	return func(context.Context) error { return client.Close() }
}
