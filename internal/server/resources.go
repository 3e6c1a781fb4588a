package server

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobboard/internal/auth"
	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/events"
	"github.com/honeycarbs/jobboard/internal/mcp/tools"
	"github.com/honeycarbs/jobboard/internal/storage/memory"
	pgstore "github.com/honeycarbs/jobboard/internal/storage/postgres"
	n4jstore "github.com/honeycarbs/jobboard/internal/storage/neo4j"
	"github.com/honeycarbs/jobboard/pkg/logging"
	n4j "github.com/honeycarbs/jobboard/pkg/neo4j"
	"github.com/honeycarbs/jobboard/pkg/postgres"
	pkgredis "github.com/honeycarbs/jobboard/pkg/redis"
	"github.com/honeycarbs/jobboard/pkg/sheets"
)

const closeTimeout = 5 * time.Second

// Resources bundles everything the HTTP surfaces depend on
type Resources struct {
	JobService    job.Service
	Authenticator *auth.Authenticator
	Sheets        tools.SheetWriter // nil when Sheets is not configured
}

var _ tools.SheetWriter = (*sheets.Client)(nil)

func newResources(jobService job.Service, authn *auth.Authenticator, sheetWriter tools.SheetWriter) *Resources {
	return &Resources{
		JobService:    jobService,
		Authenticator: authn,
		Sheets:        sheetWriter,
	}
}

func provideStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (job.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory job store; data is lost on restart")
		return memory.NewJobStore(), func() {}, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, postgres.Config{
			URL:      cfg.Postgres.URL,
			MaxConns: cfg.Postgres.MaxConns,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := pgstore.NewJobRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		logger.Info("Postgres job store initialized")
		return repo, pool.Close, nil

	case config.StoreNeo4j:
		client, err := n4j.NewClient(ctx, n4j.Config{
			URI:         cfg.Neo4j.URI,
			Username:    cfg.Neo4j.Username,
			Password:    cfg.Neo4j.Password,
			Database:    cfg.Neo4j.Database,
			MaxPoolSize: cfg.Neo4j.PoolSize,
		})
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("failed to close Neo4j driver", "err", err)
			}
		}
		repo := n4jstore.NewJobRepository(client)
		if err := repo.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("neo4j: %w", err)
		}
		logger.Info("Neo4j job store initialized", "uri", cfg.Neo4j.URI)
		return repo, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

type closer interface {
	Close(ctx context.Context) error
}

func closeWith(c closer, name string, logger *logging.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := c.Close(ctx); err != nil {
			logger.Warn("failed to close "+name, "err", err)
		}
	}
}

func providePublisher(cfg config.Config, logger *logging.Logger) (job.Publisher, func(), error) {
	switch cfg.Events.Driver {
	case config.EventsNATS:
		p, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing job events to NATS", "prefix", cfg.Events.Subject)
		return p, closeWith(p, "NATS publisher", logger), nil

	case config.EventsAMQP:
		p, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing job events to RabbitMQ", "exchange", cfg.Events.Exchange)
		return p, closeWith(p, "AMQP publisher", logger), nil

	default:
		return job.NopPublisher{}, func() {}, nil
	}
}

func provideTokens(cfg config.Config) (*auth.Tokens, error) {
	return auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideSessionRegistry(ctx context.Context, cfg config.Config, logger *logging.Logger) (auth.SessionRegistry, func(), error) {
	if cfg.Auth.RedisURL == "" {
		return nil, func() {}, nil
	}

	client, err := pkgredis.NewClient(ctx, cfg.Auth.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Redis session registry initialized")

	return auth.NewRedisSessionRegistry(client), func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close Redis client", "err", err)
		}
	}, nil
}

func provideSheets(ctx context.Context, cfg config.Config, logger *logging.Logger) (tools.SheetWriter, error) {
	if cfg.SheetsCredentialsPath == "" {
		return nil, nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.SheetsCredentialsPath})
	if err != nil {
		return nil, err
	}
	logger.Info("Google Sheets client initialized")
	return client, nil
}
