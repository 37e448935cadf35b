// internal/providers/postgres.go
package providers

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/models"

	"github.com/lib/pq"
)

// listCandidatesQuery narrows the directory with the array containment
// operators; eligibility is re-checked in memory by the caller.
const listCandidatesQuery = `
SELECT id, business_name, services, cities, pricing_tier,
       years_experience, insurance_verified, rating, total_reviews, status
FROM providers
WHERE status = 'approved'
  AND services @> ARRAY[$1]::text[]
  AND cities @> ARRAY[$2]::text[]
ORDER BY id
LIMIT $3`

type PostgresSource struct {
	db            *sql.DB
	timeout       time.Duration
	maxCandidates int
	logger        logger.Logger
}

func NewPostgresSource(db *sql.DB, timeout time.Duration, maxCandidates int, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:            db,
		timeout:       timeout,
		maxCandidates: maxCandidates,
		logger:        log.WithFields(map[string]interface{}{"source": "postgres"}),
	}
}

func (s *PostgresSource) Name() string { return string(models.SourceKindPostgres) }

func (s *PostgresSource) ListCandidates(ctx context.Context, serviceType models.ServiceType, city models.City) ([]models.Provider, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rows, err := s.db.QueryContext(ctx, listCandidatesQuery, string(serviceType), string(city), s.maxCandidates)
	if err != nil {
		return nil, s.queryError(ctx, err)
	}
	defer rows.Close()

	var raws []rawProvider
	for rows.Next() {
		var (
			raw          rawProvider
			services     pq.StringArray
			cities       pq.StringArray
			rating       sql.NullFloat64
			totalReviews sql.NullInt64
		)
		if err := rows.Scan(
			&raw.ID, &raw.BusinessName, &services, &cities, &raw.PricingTier,
			&raw.YearsExperience, &raw.InsuranceVerified, &rating, &totalReviews, &raw.Status,
		); err != nil {
			metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "error").Inc()
			return nil, errors.NewProviderDecodeFailedError(s.Name(), err)
		}

		raw.Services = services
		raw.Cities = cities
		if rating.Valid {
			v := rating.Float64
			raw.Rating = &v
		}
		if totalReviews.Valid {
			v := int(totalReviews.Int64)
			raw.TotalReviews = &v
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryError(ctx, err)
	}

	metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "success").Inc()
	providers := decodeRecords(raws, s.logger)

	s.logger.Debug("Loaded candidates", map[string]interface{}{
		"serviceType": serviceType,
		"city":        city,
		"rows":        len(raws),
		"candidates":  len(providers),
	})
	return providers, nil
}

func (s *PostgresSource) queryError(ctx context.Context, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "timeout").Inc()
		return errors.NewProviderQueryTimeoutError(s.Name())
	}
	metrics.ProviderSourceQueries.WithLabelValues(s.Name(), "error").Inc()
	return errors.NewProviderQueryFailedError(s.Name(), err)
}
