package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const defaultVerifyTimeout = 5 * time.Second

// Config holds Neo4j connection and pool settings. Zero values keep the driver defaults.
type Config struct {
	URI            string
	Username       string
	Password       string
	Database       string
	MaxPoolSize    int
	AcquireTimeout time.Duration
	VerifyTimeout  time.Duration
}

// Client owns one driver and pins every session to a database
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewClient opens the driver and fails fast when the server is unreachable
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		cfg.apply,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	verifyTimeout := cfg.VerifyTimeout
	if verifyTimeout <= 0 {
		verifyTimeout = defaultVerifyTimeout
	}
	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity at %s: %w", cfg.URI, err)
	}

	return &Client{driver: driver, database: cfg.Database}, nil
}

func (cfg Config) apply(dc *neo4j.Config) {
	if cfg.MaxPoolSize > 0 {
		dc.MaxConnectionPoolSize = cfg.MaxPoolSize
	}
	if cfg.AcquireTimeout > 0 {
		dc.ConnectionAcquisitionTimeout = cfg.AcquireTimeout
	}
}

func (c *Client) Close(ctx context.Context) error {
	if c.driver != nil {
		return c.driver.Close(ctx)
	}
	return nil
}

func (c *Client) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: c.database})
}

// Read runs work in a retried read transaction on a short-lived session
func Read[T any](ctx context.Context, c *Client, work func(tx neo4j.ManagedTransaction) (T, error)) (T, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)
	return neo4j.ExecuteRead[T](ctx, session, work)
}

// Write runs work in a retried write transaction on a short-lived session
func Write[T any](ctx context.Context, c *Client, work func(tx neo4j.ManagedTransaction) (T, error)) (T, error) {
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	return neo4j.ExecuteWrite[T](ctx, session, work)
}

// Exec runs each statement in its own auto-commit transaction and drains the
// results. Schema statements must not share a transaction with data writes.
func (c *Client) Exec(ctx context.Context, statements ...string) error {
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	for _, stmt := range statements {
		result, err := session.Run(ctx, stmt, nil)
		if err == nil {
			_, err = result.Consume(ctx)
		}
		if err != nil {
			return fmt.Errorf("statement %q: %w", stmt, err)
		}
	}
	return nil
}
