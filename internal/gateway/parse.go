package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON field names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var errEmptyArray = errors.New("response is an empty array")

// stripCodeFence removes a surrounding markdown code fence. Models sometimes
// wrap JSON in ```json ... ``` even when asked not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseArray decodes a non-empty JSON array and validates every element
func parseArray[T any](raw string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	if len(items) == 0 {
		return nil, errEmptyArray
	}

	for i := range items {
		if err := validate.Struct(&items[i]); err != nil {
			return nil, fmt.Errorf("invalid element %d: %w", i, err)
		}
	}
	return items, nil
}

// parseObject decodes and validates a single JSON object
func parseObject[T any](raw string) (*T, error) {
	var obj T
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse JSON object: %w", err)
	}
	if err := validate.Struct(&obj); err != nil {
		return nil, fmt.Errorf("invalid object: %w", err)
	}
	return &obj, nil
}
