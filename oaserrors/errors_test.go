package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "api.yaml",
			Line:    10,
			Column:  5,
			Message: "unexpected token",
			Cause:   errors.New("yaml: mapping values are not allowed"),
		}
		expected := "parse error in api.yaml at line 10, column 5: unexpected token: yaml: mapping values are not allowed"
		if err.Error() != expected {
			t.Errorf("unexpected error message:\ngot:  %s\nwant: %s", err.Error(), expected)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{Message: "empty document"}
		if msg := err.Error(); msg != "parse error: empty document" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Is matches ErrParse", func(t *testing.T) {
		err := &ParseError{Path: "test.yaml"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrReference) {
			t.Error("ParseError should not match ErrReference")
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("io error")
		err := &ParseError{Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("ParseError should unwrap to its cause")
		}
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("Error message for normal reference error", func(t *testing.T) {
		err := &ReferenceError{
			Ref:     "#/components/schemas/Pet",
			RefType: "local",
			Message: "not found",
		}
		expected := "reference error: #/components/schemas/Pet: not found"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for circular reference", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "#/components/schemas/Node",
			IsCircular: true,
			Chain:      []string{"#/components/schemas/Node", "#/components/schemas/Child"},
		}
		expected := "circular reference: #/components/schemas/Node (via #/components/schemas/Node -> #/components/schemas/Child)"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrCircularReference when IsCircular", func(t *testing.T) {
		err := &ReferenceError{IsCircular: true}
		if !errors.Is(err, ErrCircularReference) {
			t.Error("ReferenceError with IsCircular should match ErrCircularReference")
		}
		if !errors.Is(err, ErrReference) {
			t.Error("ReferenceError with IsCircular should also match ErrReference")
		}
	})

	t.Run("Is does not match ErrCircularReference when not circular", func(t *testing.T) {
		err := &ReferenceError{}
		if errors.Is(err, ErrCircularReference) {
			t.Error("ReferenceError without IsCircular should not match ErrCircularReference")
		}
	})

	t.Run("As extracts ReferenceError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ReferenceError{Ref: "#/schemas/X", IsCircular: true})
		var refErr *ReferenceError
		if !errors.As(err, &refErr) {
			t.Fatal("errors.As should succeed")
		}
		if !refErr.IsCircular {
			t.Error("IsCircular should be true")
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "ref_depth", Limit: 100, Actual: 101}
	expected := "resource limit exceeded: ref_depth (limit: 100, actual: 101)"
	if err.Error() != expected {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("ResourceLimitError should match ErrResourceLimit")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "source", Value: 2, Message: "exactly one input source is required"}
	expected := "configuration error for source (value: 2): exactly one input source is required"
	if err.Error() != expected {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
}

func TestOperationError(t *testing.T) {
	t.Run("unknown path", func(t *testing.T) {
		err := &OperationError{Path: "/pets", Method: "get"}
		if msg := err.Error(); msg != "operation not found: GET /pets" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("known path with other methods", func(t *testing.T) {
		err := &OperationError{Path: "/pets", Method: "delete", Known: []string{"GET", "POST"}}
		expected := "operation not found: DELETE /pets (path defines: GET, POST)"
		if msg := err.Error(); msg != expected {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Is matches ErrOperationNotFound through wrapping", func(t *testing.T) {
		err := fmt.Errorf("docpage: %w", &OperationError{Path: "/x", Method: "post"})
		if !errors.Is(err, ErrOperationNotFound) {
			t.Error("wrapped OperationError should match ErrOperationNotFound")
		}
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrParse,
		ErrReference,
		ErrCircularReference,
		ErrResourceLimit,
		ErrConfig,
		ErrOperationNotFound,
	}

	for i, s1 := range sentinels {
		for j, s2 := range sentinels {
			if i != j && errors.Is(s1, s2) {
				t.Errorf("sentinel errors should be distinct: %v should not match %v", s1, s2)
			}
		}
	}
}

func TestErrorChaining(t *testing.T) {
	parseErr := &ParseError{Path: "api.yaml", Message: "invalid"}
	wrapped := fmt.Errorf("layer 2: %w", fmt.Errorf("layer 1: %w", parseErr))

	if !errors.Is(wrapped, ErrParse) {
		t.Error("deeply wrapped ParseError should match ErrParse")
	}

	var extracted *ParseError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As should work through wrapping")
	}
	if extracted.Path != "api.yaml" {
		t.Errorf("unexpected path: %s", extracted.Path)
	}
}
