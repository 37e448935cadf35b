// internal/workers/matching/score-provider/activity.go
package scoreprovider

import (
	"marketplace-workers/internal/common/errors"
	"marketplace-workers/pkg/registry"
)

func Activity(cfg *Config) registry.Activity {
	return registry.Activity{
		ID:          TaskType,
		DisplayName: "Score Provider",
		Description: "Explains the match score and badges of a single provider",
		Category:    "matching",
		TaskType:    TaskType,
		InputSchema: registry.SchemaFromJSON(inputSchemaDocument),
		ErrorCodes:  []string{errors.BPMNErrorMapping[errors.ErrCodeInvalidMatchRequest]},
		Timeout:     cfg.Timeout.String(),
		Tags:        []string{"matching", "explainability"},
	}
}
