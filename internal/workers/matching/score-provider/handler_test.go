// internal/workers/matching/score-provider/handler_test.go
package scoreprovider

import (
	"context"
	"testing"
	"time"

	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/matching"
	"marketplace-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(&Config{Timeout: time.Second}, matching.MustNewEngine(matching.DefaultScoringConfig()), logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	h := newTestHandler(t)

	input, err := decodeInput(`{
		"provider": {
			"id": "p-1",
			"services": ["cleaning"],
			"cities": ["phoenix", "tempe"],
			"pricingTier": "premium",
			"yearsExperience": 5,
			"insuranceVerified": false,
			"rating": 4.5,
			"totalReviews": 25,
			"status": "approved"
		},
		"serviceType": "cleaning",
		"city": "tempe"
	}`)
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "p-1", out.ProviderID)
	assert.Equal(t, 70, out.MatchScore)
	assert.Equal(t, []models.Badge{models.BadgeMostReliable}, out.Badges)
	assert.Equal(t, models.ScoreBreakdown{
		CityMatch:  30,
		Rating:     22.5,
		Experience: 10,
		Reviews:    7.5,
		Insurance:  0,
	}, out.Breakdown)
	assert.True(t, out.Eligible)
}

func TestHandler_Execute_Eligibility(t *testing.T) {
	h := newTestHandler(t)

	base := models.Provider{
		ID:          "p-2",
		Services:    []models.ServiceType{models.ServicePool},
		Cities:      []models.City{models.CityMesa},
		PricingTier: models.TierBudget,
		Status:      models.StatusApproved,
	}

	suspended := base
	suspended.Status = models.StatusSuspended

	tests := []struct {
		name        string
		input       Input
		expectScore int
		expectElig  bool
	}{
		{name: "no request context", input: Input{Provider: base}, expectScore: 30, expectElig: true},
		{name: "matching service and city", input: Input{Provider: base, ServiceType: models.ServicePool, City: models.CityMesa}, expectScore: 30, expectElig: true},
		{name: "wrong service", input: Input{Provider: base, ServiceType: models.ServiceCleaning}, expectScore: 30, expectElig: false},
		{name: "wrong city", input: Input{Provider: base, City: models.CityTempe}, expectScore: 30, expectElig: false},
		{name: "suspended still scored", input: Input{Provider: suspended}, expectScore: 30, expectElig: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectScore, out.MatchScore)
			assert.Equal(t, tt.expectElig, out.Eligible)
			assert.Equal(t, []models.Badge{models.BadgeBestValue}, out.Badges)
		})
	}
}

func TestHandler_Execute_NilInput(t *testing.T) {
	_, err := newTestHandler(t).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidMatchRequest, errors.Normalize(err).Code)
}

func TestDecodeInput_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		variables string
	}{
		{"missing provider", `{"city":"mesa"}`},
		{"provider without id", `{"provider":{"pricingTier":"budget","status":"approved"}}`},
		{"unknown tier", `{"provider":{"id":"x","pricingTier":"gold","status":"approved"}}`},
		{"unknown city", `{"provider":{"id":"x","pricingTier":"budget","status":"approved"},"city":"tucson"}`},
		{"malformed", `{"provider":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeInput(tt.variables)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidMatchRequest, errors.Normalize(err).Code)
		})
	}
}

func TestActivity(t *testing.T) {
	a := Activity(&Config{Timeout: 2 * time.Second})
	assert.Equal(t, TaskType, a.TaskType)
	assert.Equal(t, "2s", a.Timeout)
	assert.Equal(t, []string{"INVALID_MATCH_REQUEST"}, a.ErrorCodes)
	assert.Equal(t, "object", a.InputSchema["type"])
}
