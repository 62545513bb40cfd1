package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/avialine/flight-booking/internal/logger"
)

// applyUpdates walks a PATCH update map and applies each entry through the
// entity's setter table.
//
// The "id" key is always ignored (ids are immutable after assignment).
// Unknown fields and values that fail coercion are logged at warning level
// and skipped; the operation continues with the remaining fields.
func applyUpdates[T any](log *logger.Logger, entity *T, setters map[string]func(*T, any) error, updates map[string]any) {
	for key, value := range updates {
		if strings.EqualFold(key, "id") {
			continue
		}

		setter, ok := setters[key]
		if !ok {
			log.Warn().Str("field", key).Msg("unknown field in partial update")
			continue
		}

		if err := setter(entity, value); err != nil {
			log.Warn().Err(err).Str("field", key).Msg("failed to update field")
		}
	}
}

// Accepted layouts for local date-time fields in partial updates. Inputs are
// validated against these layouts and then stored verbatim, matching the
// round-trip contract for timestamps.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// validateLocalDateTime checks that s parses as an ISO-8601 local date-time
// (with or without seconds). The original string is returned unchanged on
// success; no normalization is applied.
func validateLocalDateTime(s string) (string, error) {
	for _, layout := range localDateTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return s, nil
		}
	}
	return "", fmt.Errorf("value %q is not an ISO-8601 local date-time", s)
}

// The helpers below coerce values decoded from a JSON PATCH body
// (map[string]any) into the declared field types. encoding/json decodes every
// JSON number as float64, so numeric fields accept float64 alongside the
// native integer types for callers that build update maps in code.

func stringValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

func intValue(v any) (int, error) {
	n, err := int64Value(v)
	return int(n), err
}

func int64Value(v any) (int64, error) {
	switch value := v.(type) {
	case float64:
		return int64(value), nil
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	case json.Number:
		return value.Int64()
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func float64Value(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case json.Number:
		return value.Float64()
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// referenceValue coerces a reference field that may arrive as a bare id or
// as a nested object with an "id" key (the same two shapes the JSON codec
// accepts on writes).
func referenceValue(v any) (int64, error) {
	if object, ok := v.(map[string]any); ok {
		id, exists := object["id"]
		if !exists {
			return 0, fmt.Errorf("reference object has no id field")
		}
		return int64Value(id)
	}
	return int64Value(v)
}
