// internal/workers/matching/score-provider/handler.go
package scoreprovider

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/validation"
	"marketplace-workers/internal/matching"
	"marketplace-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-provider"
)

var inputSchemaDocument = []byte(`{
	"type": "object",
	"required": ["provider"],
	"properties": {
		"provider": {
			"type": "object",
			"required": ["id", "pricingTier", "status"],
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"services": {"type": "array", "items": {"type": "string"}},
				"cities": {"type": "array", "items": {"type": "string"}},
				"yearsExperience": {"type": "integer"},
				"rating": {"type": ["number", "null"]},
				"totalReviews": {"type": ["integer", "null"]}
			}
		},
		"serviceType": {"type": "string"},
		"city": {"type": "string"}
	}
}`)

var inputSchema = validation.MustCompile(inputSchemaDocument)

type Handler struct {
	config       *Config
	engine       *matching.Engine
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, engine *matching.Engine, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       engine,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Debug("processing job", map[string]interface{}{
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

	output := h.execute(input)

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

func decodeInput(variables string) (*Input, error) {
	if variables == "" {
		variables = "{}"
	}

	result, err := inputSchema.ValidateJSON([]byte(variables))
	if err != nil {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("parse input: %v", err))
	}
	if !result.Valid {
		return nil, errors.NewInvalidMatchRequestError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("decode input: %v", err))
	}
	return &input, nil
}

// execute scores the provider regardless of eligibility so a suspended or
// out-of-area provider can still be explained.
func (h *Handler) execute(input *Input) *Output {
	p := &input.Provider
	score, breakdown := h.engine.Score(p)

	output := &Output{
		ProviderID: p.ID,
		MatchScore: score,
		Badges:     h.engine.Badges(p),
		Breakdown:  breakdown,
		Eligible:   isEligible(p, input.ServiceType, input.City),
	}

	h.logger.Info("provider scored", map[string]interface{}{
		"providerId": p.ID,
		"matchScore": score,
		"eligible":   output.Eligible,
	})
	return output
}

// isEligible checks approval plus whichever of serviceType and city were
// requested.
func isEligible(p *models.Provider, serviceType models.ServiceType, city models.City) bool {
	if !p.IsApproved() {
		return false
	}
	if serviceType != "" && !p.OffersService(serviceType) {
		return false
	}
	if city != "" && !p.ServesCity(city) {
		return false
	}
	return true
}

// Execute scores input without a job client.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidMatchRequestError("input cannot be nil")
	}
	return h.execute(input), nil
}
