package schemautil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []string
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"string type", "string", []string{"string"}},
		{"array of any (OAS 3.1 style)", []any{"string", "null"}, []string{"string", "null"}},
		{"array of strings", []string{"integer"}, []string{"integer"}},
		{"non-string values filtered", []any{"string", 123, "null"}, []string{"string", "null"}},
		{"unsupported type", 123, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Types(tt.value))
		})
	}
}

func TestPrimaryType(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"single", "object", "object"},
		{"null first", []any{"null", "integer"}, "integer"},
		{"null last", []any{"string", "null"}, "string"},
		{"only null", []any{"null"}, "null"},
		{"empty list", []any{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrimaryType(tt.value))
		})
	}
}

func TestIsNullable(t *testing.T) {
	assert.True(t, IsNullable([]any{"string", "null"}))
	assert.False(t, IsNullable("string"))
	assert.False(t, IsNullable(nil))
}
