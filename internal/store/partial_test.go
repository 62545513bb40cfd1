package store

import (
	"encoding/json"
	"testing"

	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyUpdates_IgnoresIDCaseInsensitively(t *testing.T) {
	flight := models.Flight{ID: 1, Origin: "A"}

	applyUpdates(logger.Nop(), &flight, flightFieldSetters, map[string]any{
		"id":     float64(99),
		"ID":     float64(99),
		"Id":     float64(99),
		"origin": "B",
	})

	assert.Equal(t, int64(1), flight.ID)
	assert.Equal(t, "B", flight.Origin)
}

func TestApplyUpdates_SkipsUnknownFields(t *testing.T) {
	user := models.User{FirstName: "Ada"}

	applyUpdates(logger.Nop(), &user, userFieldSetters, map[string]any{
		"nickname":  "al",
		"firstName": "Grace",
	})

	assert.Equal(t, "Grace", user.FirstName)
}

func TestApplyUpdates_SkipsFailedCoercions(t *testing.T) {
	flight := models.Flight{Price: 99.5, Origin: "A"}

	applyUpdates(logger.Nop(), &flight, flightFieldSetters, map[string]any{
		"price":  "not-a-number",
		"origin": "B",
	})

	assert.Equal(t, 99.5, flight.Price)
	assert.Equal(t, "B", flight.Origin)
}

func TestApplyUpdates_RejectsInvalidEnumValue(t *testing.T) {
	user := models.User{Role: models.RoleCustomer}

	applyUpdates(logger.Nop(), &user, userFieldSetters, map[string]any{"role": "SUPERVISOR"})

	assert.Equal(t, models.RoleCustomer, user.Role)
}

func TestValidateLocalDateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "with seconds", input: "2025-01-02T10:00:00"},
		{name: "without seconds", input: "2025-01-02T10:00"},
		{name: "date only", input: "2025-01-02", wantErr: true},
		{name: "with zone offset", input: "2025-01-02T10:00:00+03:00", wantErr: true},
		{name: "garbage", input: "tomorrow", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateLocalDateTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got, "input must be stored verbatim")
		})
	}
}

func TestNumericCoercions(t *testing.T) {
	n, err := int64Value(float64(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = int64Value(json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	f, err := float64Value(120)
	require.NoError(t, err)
	assert.Equal(t, 120.0, f)

	_, err = int64Value("42")
	assert.Error(t, err)
}

func TestReferenceValue(t *testing.T) {
	id, err := referenceValue(float64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	id, err = referenceValue(map[string]any{"id": float64(9)})
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	_, err = referenceValue(map[string]any{"email": "a@x"})
	assert.Error(t, err)

	_, err = referenceValue("7")
	assert.Error(t, err)
}
