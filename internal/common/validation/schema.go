// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins every error into one line for logs and BPMN error details.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON schema, safe for concurrent use.
type Schema struct {
	schema *gojsonschema.Schema
}

// Compile parses a JSON schema document. Workers compile their embedded
// schema once at construction.
func Compile(document []byte) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

func MustCompile(document []byte) *Schema {
	s, err := Compile(document)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateInput checks decoded job variables against the schema.
func (s *Schema) ValidateInput(input map[string]interface{}) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewGoLoader(input))
}

// ValidateJSON checks a raw JSON document against the schema.
func (s *Schema) ValidateJSON(document []byte) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewBytesLoader(document))
}

func (s *Schema) validate(doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	res, err := s.schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	result := &ValidationResult{Valid: res.Valid()}
	for _, re := range res.Errors() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldOf(re),
			Message: re.Description(),
			Code:    codeOf(re.Type()),
		})
	}
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Field < result.Errors[j].Field
	})
	return result, nil
}

// fieldOf reports the missing property for "required" errors, which
// gojsonschema otherwise attributes to the parent object.
func fieldOf(re gojsonschema.ResultError) string {
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			if re.Field() == "(root)" {
				return prop
			}
			return re.Field() + "." + prop
		}
	}
	return re.Field()
}

var codes = map[string]string{
	"required":                        "REQUIRED_FIELD_MISSING",
	"invalid_type":                    "INVALID_TYPE",
	"enum":                            "INVALID_ENUM_VALUE",
	"number_gte":                      "MIN_VALUE_VIOLATION",
	"number_lte":                      "MAX_VALUE_VIOLATION",
	"string_gte":                      "MIN_LENGTH_VIOLATION",
	"string_lte":                      "MAX_LENGTH_VIOLATION",
	"array_max_items":                 "MAX_ITEMS_VIOLATION",
	"pattern":                         "PATTERN_MISMATCH",
	"additional_property_not_allowed": "EXTRA_FIELD",
}

func codeOf(errType string) string {
	if c, ok := codes[errType]; ok {
		return c
	}
	return strings.ToUpper(errType)
}
