// internal/providers/source.go
package providers

import (
	"context"
	"fmt"
	"time"

	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/common/database"
	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/models"
)

// Source returns the candidate pool for a request. Implementations may
// pre-filter, but callers still run eligibility on the result.
type Source interface {
	ListCandidates(ctx context.Context, serviceType models.ServiceType, city models.City) ([]models.Provider, error)
	Name() string
}

// StaticSource serves a fixed pool, used when candidates arrive inline with
// the request and in tests.
type StaticSource struct {
	Providers []models.Provider
}

func (s *StaticSource) ListCandidates(_ context.Context, _ models.ServiceType, _ models.City) ([]models.Provider, error) {
	out := make([]models.Provider, len(s.Providers))
	copy(out, s.Providers)
	return out, nil
}

func (s *StaticSource) Name() string { return string(models.SourceKindInline) }

// New builds the source named by cfg.Source over the open connections and
// wraps it in the redis cache when a TTL is configured. The inline kind has
// no backing store and returns a nil Source.
func New(cfg config.MatchingConfig, conns *database.Connections, log logger.Logger) (Source, error) {
	timeout := time.Duration(cfg.QueryTimeout) * time.Millisecond

	var src Source
	switch models.SourceKind(cfg.Source) {
	case models.SourceKindPostgres:
		if conns.Postgres == nil {
			return nil, fmt.Errorf("postgres source requires a database connection")
		}
		src = NewPostgresSource(conns.Postgres, timeout, cfg.MaxCandidates, log)
	case models.SourceKindElasticsearch:
		if conns.Elasticsearch == nil {
			return nil, fmt.Errorf("elasticsearch source requires a client")
		}
		src = NewElasticsearchSource(conns.Elasticsearch, cfg.ProviderIndex, timeout, cfg.MaxCandidates, log)
	case models.SourceKindInline:
		return nil, nil
	default:
		return nil, errors.NewUnknownSourceKindError(cfg.Source)
	}

	if cfg.CacheTTL > 0 && conns.Redis != nil {
		src = NewCachedSource(src, conns.Redis, cfg.CacheTTLDuration(), log)
	}
	return src, nil
}
