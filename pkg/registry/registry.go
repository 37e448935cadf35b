// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

func New(version string, activities ...Activity) *ActivityRegistry {
	reg := &ActivityRegistry{Version: version, Activities: activities}
	sort.SliceStable(reg.Activities, func(i, j int) bool {
		return reg.Activities[i].TaskType < reg.Activities[j].TaskType
	})
	return reg
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, reg.Validate()
}

// Validate checks that every activity has a task type and that task types
// are unique.
func (r *ActivityRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if a.TaskType == "" {
			return fmt.Errorf("activity %q has no taskType", a.ID)
		}
		if seen[a.TaskType] {
			return fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		seen[a.TaskType] = true
	}
	return nil
}

func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// SchemaFromJSON decodes a JSON schema document for InputSchema.
func SchemaFromJSON(document []byte) map[string]interface{} {
	var schema map[string]interface{}
	if err := json.Unmarshal(document, &schema); err != nil {
		return nil
	}
	return schema
}
