// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SortsAndFinds(t *testing.T) {
	reg := New("1.0.0",
		Activity{ID: "score", TaskType: "score-provider"},
		Activity{ID: "match", TaskType: "match-providers"},
	)

	require.NoError(t, reg.Validate())
	assert.Equal(t, "match-providers", reg.Activities[0].TaskType)

	a, ok := reg.Find("score-provider")
	assert.True(t, ok)
	assert.Equal(t, "score", a.ID)

	_, ok = reg.Find("unknown")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		activities  []Activity
		expectError string
	}{
		{name: "empty", activities: nil},
		{name: "missing task type", activities: []Activity{{ID: "x"}}, expectError: "has no taskType"},
		{
			name:        "duplicate",
			activities:  []Activity{{ID: "a", TaskType: "t"}, {ID: "b", TaskType: "t"}},
			expectError: "duplicate taskType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ActivityRegistry{Activities: tt.activities}).Validate()
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","activities":[{"id":"m","taskType":"match-providers"}]}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)
	assert.Len(t, reg.Activities, 1)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSchemaFromJSON(t *testing.T) {
	assert.Equal(t, "object", SchemaFromJSON([]byte(`{"type":"object"}`))["type"])
	assert.Nil(t, SchemaFromJSON([]byte(`not json`)))
}
