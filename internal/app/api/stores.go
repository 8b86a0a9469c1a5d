package api

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	menumemory "github.com/Apurer/quickbite-api/internal/domains/menu/adapters/memory"
	menumongo "github.com/Apurer/quickbite-api/internal/domains/menu/adapters/persistence/mongo"
	menupostgres "github.com/Apurer/quickbite-api/internal/domains/menu/adapters/persistence/postgres"
	menuports "github.com/Apurer/quickbite-api/internal/domains/menu/ports"
	ordermemory "github.com/Apurer/quickbite-api/internal/domains/orders/adapters/memory"
	ordermongo "github.com/Apurer/quickbite-api/internal/domains/orders/adapters/persistence/mongo"
	orderpostgres "github.com/Apurer/quickbite-api/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/quickbite-api/internal/domains/orders/ports"
	usermemory "github.com/Apurer/quickbite-api/internal/domains/users/adapters/memory"
	usermongo "github.com/Apurer/quickbite-api/internal/domains/users/adapters/persistence/mongo"
	userpostgres "github.com/Apurer/quickbite-api/internal/domains/users/adapters/persistence/postgres"
	userredis "github.com/Apurer/quickbite-api/internal/domains/users/adapters/redis"
	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
	"github.com/Apurer/quickbite-api/internal/platform/migrations"
	platformmongo "github.com/Apurer/quickbite-api/internal/platform/mongo"
	platformpostgres "github.com/Apurer/quickbite-api/internal/platform/postgres"
	platformredis "github.com/Apurer/quickbite-api/internal/platform/redis"
)

type repositories struct {
	driver string
	users  userports.Repository
	menu   menuports.Repository
	orders orderports.Repository
}

func memoryRepositories() repositories {
	return repositories{
		driver: DriverMemory,
		users:  usermemory.NewRepository(),
		menu:   menumemory.NewRepository(),
		orders: ordermemory.NewRepository(),
	}
}

// resources owns the connections opened while building the process.
type resources struct {
	logger  *slog.Logger
	gormDB  *gorm.DB
	closers []func()
}

func (r *resources) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

// postgres returns the shared GORM handle, connecting and migrating on
// first use.
func (r *resources) postgres(ctx context.Context, cfg Config) (*gorm.DB, error) {
	if r.gormDB != nil {
		return r.gormDB, nil
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.WithMaxOpenConns(cfg.PostgresPool))
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db); err != nil {
		platformpostgres.Close(db)
		return nil, err
	}
	r.gormDB = db
	r.closers = append(r.closers, func() { platformpostgres.Close(db) })
	return db, nil
}

// buildRepositories selects the document store. An unreachable backend
// degrades to memory with a warning so the API still boots.
func (r *resources) buildRepositories(ctx context.Context, cfg Config) repositories {
	switch cfg.StoreDriver {
	case DriverPostgres:
		db, err := r.postgres(ctx, cfg)
		if err != nil {
			r.logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
			return memoryRepositories()
		}
		r.logger.Info("repositories configured with postgres")
		return repositories{
			driver: DriverPostgres,
			users:  userpostgres.NewRepository(db),
			menu:   menupostgres.NewRepository(db),
			orders: orderpostgres.NewRepository(db),
		}
	case DriverMongo:
		db, disconnect, err := platformmongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			r.logger.Warn("failed to connect to mongo, falling back to memory", slog.String("error", err.Error()))
			return memoryRepositories()
		}
		users, err := usermongo.NewRepository(ctx, db)
		if err != nil {
			_ = disconnect(context.Background())
			r.logger.Warn("failed to prepare mongo users collection, falling back to memory", slog.String("error", err.Error()))
			return memoryRepositories()
		}
		orders, err := ordermongo.NewRepository(ctx, db)
		if err != nil {
			_ = disconnect(context.Background())
			r.logger.Warn("failed to prepare mongo orders collection, falling back to memory", slog.String("error", err.Error()))
			return memoryRepositories()
		}
		r.closers = append(r.closers, func() { _ = disconnect(context.Background()) })
		r.logger.Info("repositories configured with mongo", slog.String("database", cfg.MongoDatabase))
		return repositories{
			driver: DriverMongo,
			users:  users,
			menu:   menumongo.NewRepository(db),
			orders: orders,
		}
	default:
		r.logger.Info("repositories configured in memory")
		return memoryRepositories()
	}
}

// buildSessionStore selects where session-mode logins live.
func (r *resources) buildSessionStore(ctx context.Context, cfg Config) userports.SessionStore {
	switch cfg.SessionDriver {
	case DriverRedis:
		client, err := platformredis.Connect(ctx, platformredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			r.logger.Warn("failed to connect to redis, falling back to in-memory sessions", slog.String("error", err.Error()))
			return usermemory.NewSessionStore()
		}
		r.closers = append(r.closers, func() { _ = client.Close() })
		r.logger.Info("session store configured with redis", slog.String("addr", cfg.RedisAddr))
		return userredis.NewSessionStore(goredis.UniversalClient(client))
	case DriverPostgres:
		db, err := r.postgres(ctx, cfg)
		if err != nil {
			r.logger.Warn("failed to connect to postgres, falling back to in-memory sessions", slog.String("error", err.Error()))
			return usermemory.NewSessionStore()
		}
		r.logger.Info("session store configured with postgres")
		return userpostgres.NewSessionStore(db)
	default:
		return usermemory.NewSessionStore()
	}
}
