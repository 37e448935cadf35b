// internal/workers/matching/match-providers/handler.go
package matchproviders

import (
	"context"
	"fmt"

	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/common/observability"
	"marketplace-workers/internal/matching"
	"marketplace-workers/internal/models"
	"marketplace-workers/internal/providers"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "match-providers"
)

type Handler struct {
	config       *Config
	engine       *matching.Engine
	source       providers.Source
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the worker. source may be nil, in which case every job
// must carry its own candidate pool.
func NewHandler(config *Config, engine *matching.Engine, source providers.Source, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Handler{
		config:       config,
		engine:       engine,
		source:       source,
		obs:          obs,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := decodeInput(job.Variables)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	return h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidMatchRequestError("input cannot be nil")
	}
	if !input.ServiceType.Valid() {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("unknown service type %q", input.ServiceType))
	}
	if !input.City.Valid() {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("unknown city %q", input.City))
	}

	topN, err := h.resolveTopN(input.TopN)
	if err != nil {
		return nil, err
	}

	candidates, sourceName, err := h.candidates(ctx, input)
	if err != nil {
		return nil, err
	}

	chain := matching.NewEligibilityChain(input.ServiceType, input.City)
	eligible := chain.Apply(candidates)
	for filter, n := range chain.Rejections(candidates) {
		metrics.FilterRejections.WithLabelValues(filter).Add(float64(n))
	}
	metrics.CandidatePoolSize.Observe(float64(len(candidates)))
	metrics.EligiblePoolSize.Observe(float64(len(eligible)))

	output := &Output{
		MatchID:        uuid.NewString(),
		ServiceType:    input.ServiceType,
		City:           input.City,
		Source:         sourceName,
		CandidateCount: len(candidates),
		EligibleCount:  len(eligible),
	}

	mode := "top"
	if input.PerTier {
		mode = "per_tier"
		output.TierOffers = h.engine.TopPerTier(eligible, topN)
		output.Offers = make([]models.MatchedProvider, 0, len(output.TierOffers)*topN)
		for _, tier := range output.TierOffers {
			output.Offers = append(output.Offers, tier.Offers...)
		}
	} else {
		output.Offers = h.engine.GetTopProviders(eligible, topN)
	}

	metrics.MatchRequests.WithLabelValues(string(input.ServiceType), string(input.City), mode).Inc()
	for _, offer := range output.Offers {
		metrics.OfferedScores.Observe(float64(offer.MatchScore))
	}
	h.obs.RecordOffers(ctx, string(input.ServiceType), string(input.City), len(output.Offers))

	h.logger.Info("providers matched", map[string]interface{}{
		"matchId":        output.MatchID,
		"serviceType":    input.ServiceType,
		"city":           input.City,
		"source":         sourceName,
		"candidateCount": output.CandidateCount,
		"eligibleCount":  output.EligibleCount,
		"offerCount":     len(output.Offers),
		"mode":           mode,
	})

	return output, nil
}

func (h *Handler) resolveTopN(requested *int) (int, error) {
	if requested == nil {
		return h.config.DefaultTopN, nil
	}
	n := *requested
	if n < 0 {
		return 0, errors.NewInvalidMatchRequestError(fmt.Sprintf("topN must not be negative, got %d", n))
	}
	if h.config.MaxTopN > 0 && n > h.config.MaxTopN {
		return 0, errors.NewInvalidMatchRequestError(fmt.Sprintf("topN %d exceeds maximum %d", n, h.config.MaxTopN))
	}
	return n, nil
}

// candidates prefers a pool carried on the job over the configured source.
func (h *Handler) candidates(ctx context.Context, input *Input) ([]models.Provider, string, error) {
	if input.Providers != nil {
		return input.Providers, string(models.SourceKindInline), nil
	}
	if h.source == nil {
		return nil, "", errors.NewInvalidMatchRequestError("no providers supplied and no provider source configured")
	}

	pool, err := h.source.ListCandidates(ctx, input.ServiceType, input.City)
	if err != nil {
		return nil, h.source.Name(), err
	}
	return pool, h.source.Name(), nil
}

// Execute runs the matching pipeline without a job client.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return fmt.Errorf("create complete command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return fmt.Errorf("complete job: %w", err)
	}
	return nil
}
