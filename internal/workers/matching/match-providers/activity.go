// internal/workers/matching/match-providers/activity.go
package matchproviders

import (
	"marketplace-workers/internal/common/errors"
	"marketplace-workers/pkg/registry"
)

// Activity describes this worker for the activity registry.
func Activity(cfg *Config) registry.Activity {
	return registry.Activity{
		ID:          TaskType,
		DisplayName: "Match Providers",
		Description: "Filters the candidate pool for a service request and returns ranked provider offers",
		Category:    "matching",
		TaskType:    TaskType,
		InputSchema: registry.SchemaFromJSON(inputSchemaDocument),
		ErrorCodes: []string{
			errors.BPMNErrorMapping[errors.ErrCodeInvalidMatchRequest],
			errors.BPMNErrorMapping[errors.ErrCodeProviderQueryFailed],
			errors.BPMNErrorMapping[errors.ErrCodeProviderQueryTimeout],
			errors.BPMNErrorMapping[errors.ErrCodeProviderIndexNotFound],
		},
		Timeout: cfg.Timeout.String(),
		Retries: errors.GetRetryCount(errors.ErrCodeProviderQueryFailed),
		Tags:    []string{"matching", "ranking"},
	}
}
