package main

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/memberchat/member-service/internal/api/handler"
	"github.com/memberchat/member-service/internal/core/ports"
	mongostore "github.com/memberchat/member-service/internal/infrastructure/db/mongo"
	pgstore "github.com/memberchat/member-service/internal/infrastructure/db/postgres"
	redisstore "github.com/memberchat/member-service/internal/infrastructure/db/redis"
	"github.com/memberchat/member-service/internal/pkg/config"
	"github.com/memberchat/member-service/migrations"
)

// stores bundles the repositories selected by configuration together with the
// readiness checks and closers of the underlying clients.
type stores struct {
	accounts ports.AccountRepository
	tokens   ports.TokenRepository
	messages ports.MessageRepository
	checks   map[string]handler.CheckFunc
	closers  []func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	st := &stores{checks: make(map[string]handler.CheckFunc)}

	var err error
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		err = st.openMongo(ctx, cfg)
	default:
		err = st.openPostgres(ctx, cfg)
	}
	if err != nil {
		st.close(zerolog.Nop())
		return nil, err
	}

	if cfg.TokenStore == config.TokenStoreRedis {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			st.close(zerolog.Nop())
			return nil, err
		}
		st.tokens = redisstore.NewTokenRepository(rdb)
		st.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		st.closers = append(st.closers, closeRedis(rdb))
	}

	return st, nil
}

func (st *stores) openPostgres(ctx context.Context, cfg *config.Config) error {
	db, err := pgstore.Connect(ctx, pgstore.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
	})
	if err != nil {
		return err
	}
	st.closers = append(st.closers, closeSQL(db))

	if cfg.MigrateOnStart {
		if err := migrations.Migrate(ctx, db); err != nil {
			return err
		}
	}

	st.accounts = pgstore.NewAccountRepository(db)
	st.tokens = pgstore.NewTokenRepository(db)
	st.messages = pgstore.NewMessageRepository(db)
	st.checks["postgres"] = db.PingContext
	return nil
}

func (st *stores) openMongo(ctx context.Context, cfg *config.Config) error {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	st.closers = append(st.closers, client.Disconnect)

	if cfg.MigrateOnStart {
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
	}

	st.accounts = mongostore.NewAccountRepository(db)
	st.tokens = mongostore.NewTokenRepository(db)
	st.messages = mongostore.NewMessageRepository(db)
	st.checks["mongodb"] = func(ctx context.Context) error { return pingMongo(ctx, client) }
	return nil
}

func (st *stores) close(log zerolog.Logger) {
	ctx := context.Background()
	for i := len(st.closers) - 1; i >= 0; i-- {
		if err := st.closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}
}

func pingMongo(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

func closeRedis(rdb *goredis.Client) func(context.Context) error {
	return func(context.Context) error { return rdb.Close() }
}
