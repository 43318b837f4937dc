package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemaIsJSON(t *testing.T) {
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(Embedded(), &parsed))
	assert.Equal(t, "pre-commit configuration", parsed["title"])
}

func TestSchemaValidation(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name         string
		document     map[string]interface{}
		wantPointers []string
	}{
		{
			name: "valid document",
			document: map[string]interface{}{
				"ci": map[string]interface{}{"autoupdate_schedule": "quarterly"},
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://github.com/psf/black",
						"rev":  "23.10.1",
						"hooks": []interface{}{
							map[string]interface{}{"id": "black", "args": []interface{}{"--quiet"}},
						},
					},
				},
			},
		},
		{
			name:         "missing repos",
			document:     map[string]interface{}{"fail_fast": true},
			wantPointers: []string{""},
		},
		{
			name: "args must be a list",
			document: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "local",
						"hooks": []interface{}{
							map[string]interface{}{"id": "x", "args": "--fix"},
						},
					},
				},
			},
			wantPointers: []string{"/repos/0/hooks/0/args"},
		},
		{
			name: "additional dependencies must be strings",
			document: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://example.com/hooks",
						"rev":  "v1",
						"hooks": []interface{}{
							map[string]interface{}{"id": "x", "additional_dependencies": []interface{}{"ok", 3}},
						},
					},
				},
			},
			wantPointers: []string{"/repos/0/hooks/0/additional_dependencies/1"},
		},
		{
			name: "exclude must be a string",
			document: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{
						"repo": "https://example.com/hooks",
						"rev":  "v1",
						"hooks": []interface{}{
							map[string]interface{}{"id": "x", "exclude": []interface{}{"a"}},
						},
					},
				},
			},
			wantPointers: []string{"/repos/0/hooks/0/exclude"},
		},
		{
			name: "unknown schedule",
			document: map[string]interface{}{
				"ci":    map[string]interface{}{"autoupdate_schedule": "daily"},
				"repos": []interface{}{},
			},
			wantPointers: []string{"/ci/autoupdate_schedule"},
		},
		{
			name: "numeric rev",
			document: map[string]interface{}{
				"repos": []interface{}{
					map[string]interface{}{"repo": "https://example.com/hooks", "rev": 23.1, "hooks": []interface{}{}},
				},
			},
			wantPointers: []string{"/repos/0/rev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := validator.Violations(tt.document)
			require.NoError(t, err)

			var pointers []string
			for _, v := range violations {
				pointers = append(pointers, v.Pointer)
				assert.NotEmpty(t, v.Message)
			}
			assert.Equal(t, tt.wantPointers, pointers)

			err = validator.Validate(tt.document)
			if len(tt.wantPointers) == 0 {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, strings.HasPrefix(err.Error(), "schema validation failed"))
			}
		})
	}
}
