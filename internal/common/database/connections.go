// internal/common/database/connections.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
)

// Connections holds the backends the configured provider source needs. Any
// field may be nil when its backend is not in use.
type Connections struct {
	Postgres      *sql.DB
	Redis         *redis.Client
	Elasticsearch *elasticsearch.Client
}

// Open connects only the backends required by cfg.Matching: the store named
// by matching.source, plus redis when the candidate cache is enabled.
func Open(ctx context.Context, cfg *config.Config) (*Connections, error) {
	conns := &Connections{}

	switch models.SourceKind(cfg.Matching.Source) {
	case models.SourceKindPostgres:
		db, err := OpenPostgres(ctx, cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		conns.Postgres = db
	case models.SourceKindElasticsearch:
		es, err := OpenElasticsearch(ctx, cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		conns.Elasticsearch = es
	}

	if cfg.Matching.CacheTTL > 0 {
		rdb, err := OpenRedis(ctx, cfg.Database.Redis)
		if err != nil {
			conns.Close()
			return nil, err
		}
		conns.Redis = rdb
	}

	return conns, nil
}

// Ping checks every open backend; used by the readiness probe.
func (c *Connections) Ping(ctx context.Context) error {
	if c.Postgres != nil {
		if err := c.Postgres.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if c.Elasticsearch != nil {
		if err := PingElasticsearch(ctx, c.Elasticsearch); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connections) Close() {
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
