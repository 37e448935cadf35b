// internal/workers/matching/match-providers/schema.go
package matchproviders

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/validation"
)

//go:embed schema.json
var inputSchemaDocument []byte

var inputSchema = validation.MustCompile(inputSchemaDocument)

// decodeInput validates raw job variables and decodes them. Any failure is
// reported as an invalid match request.
func decodeInput(variables string) (*Input, error) {
	if variables == "" {
		variables = "{}"
	}

	result, err := inputSchema.ValidateJSON([]byte(variables))
	if err != nil {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("parse input: %v", err))
	}
	if !result.Valid {
		return nil, errors.NewInvalidMatchRequestError(result.Summary()).
			WithMetadata("validationErrors", result.Errors)
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("decode input: %v", err))
	}
	return &input, nil
}
