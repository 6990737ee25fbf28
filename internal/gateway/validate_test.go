package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContract() Contract {
	minLen := 1
	maxLen := 10
	min := 1.0
	max := 100.0

	return Contract{
		"name": {
			Type:     FieldString,
			Required: true,
			MinLen:   &minLen,
			MaxLen:   &maxLen,
		},
		"sceneId": {
			Type:     FieldString,
			Required: true,
			Format:   FormatUUID,
		},
		"quality": {
			Type:    FieldString,
			Enum:    []string{"draft", "standard", "high"},
			Default: "standard",
		},
		"count": {
			Type: FieldInteger,
			Min:  &min,
			Max:  &max,
		},
	}
}

const validUUID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

// TestValidateArgs_Success tests a fully valid argument set
func TestValidateArgs_Success(t *testing.T) {
	args, err := ValidateArgs(testContract(), map[string]any{
		"name":    "Lobby",
		"sceneId": validUUID,
		"quality": "high",
		"count":   float64(5),
	})
	require.NoError(t, err)

	assert.Equal(t, "Lobby", args["name"])
	assert.Equal(t, validUUID, args["sceneId"])
	assert.Equal(t, "high", args["quality"])
	assert.Equal(t, float64(5), args["count"])
}

// TestValidateArgs_DefaultsApplied tests that omitted optional fields get
// their declared defaults
func TestValidateArgs_DefaultsApplied(t *testing.T) {
	args, err := ValidateArgs(testContract(), map[string]any{
		"name":    "Lobby",
		"sceneId": validUUID,
	})
	require.NoError(t, err)

	assert.Equal(t, "standard", args["quality"])
	_, present := args["count"]
	assert.False(t, present, "optional field without a default stays absent")
}

// TestValidateArgs_MissingRequiredListsAll tests that every missing required
// field is named, not just the first
func TestValidateArgs_MissingRequiredListsAll(t *testing.T) {
	_, err := ValidateArgs(testContract(), map[string]any{})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "sceneId is required")
}

// TestValidateArgs_NullCountsAsAbsent tests that explicit null fails a
// required field
func TestValidateArgs_NullCountsAsAbsent(t *testing.T) {
	_, err := ValidateArgs(testContract(), map[string]any{
		"name":    nil,
		"sceneId": validUUID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

// TestValidateArgs_CollectsMultipleViolations tests that violations across
// fields are joined into one failure
func TestValidateArgs_CollectsMultipleViolations(t *testing.T) {
	_, err := ValidateArgs(testContract(), map[string]any{
		"name":    "this name is far too long",
		"sceneId": "not-a-uuid",
		"quality": "ultra",
		"count":   float64(500),
	})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "name must be at most 10 characters")
	assert.Contains(t, err.Error(), "sceneId must be a valid UUID")
	assert.Contains(t, err.Error(), "quality must be one of: draft, standard, high")
	assert.Contains(t, err.Error(), "count must be at most 100")
}

// TestValidateArgs_TypeMismatches tests type checking per declared type
func TestValidateArgs_TypeMismatches(t *testing.T) {
	contract := Contract{
		"s": {Type: FieldString},
		"n": {Type: FieldNumber},
		"i": {Type: FieldInteger},
		"b": {Type: FieldBoolean},
		"o": {Type: FieldObject},
		"a": {Type: FieldArray},
	}

	_, err := ValidateArgs(contract, map[string]any{
		"s": 1,
		"n": "two",
		"i": 1.5,
		"b": "yes",
		"o": []any{},
		"a": map[string]any{},
	})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "s must be a string")
	assert.Contains(t, err.Error(), "n must be a number")
	assert.Contains(t, err.Error(), "i must be an integer")
	assert.Contains(t, err.Error(), "b must be a boolean")
	assert.Contains(t, err.Error(), "o must be an object")
	assert.Contains(t, err.Error(), "a must be an array")
}

// TestValidateArgs_IntegerWidening tests that in-process int arguments pass
// integer contracts
func TestValidateArgs_IntegerWidening(t *testing.T) {
	contract := Contract{"i": {Type: FieldInteger}}

	args, err := ValidateArgs(contract, map[string]any{"i": 7})
	require.NoError(t, err)
	assert.Equal(t, 7, args["i"])
}

// TestValidateArgs_UUIDFormat tests the version and variant nibble rules
func TestValidateArgs_UUIDFormat(t *testing.T) {
	contract := Contract{"id": {Type: FieldString, Format: FormatUUID}}

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"canonical v1", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"canonical v4", "f47ac10b-58cc-4372-a567-0e02b2c3d479", true},
		{"uppercase hex", "F47AC10B-58CC-4372-A567-0E02B2C3D479", true},
		{"version zero", "f47ac10b-58cc-0372-a567-0e02b2c3d479", false},
		{"version seven", "f47ac10b-58cc-7372-a567-0e02b2c3d479", false},
		{"bad variant", "f47ac10b-58cc-4372-c567-0e02b2c3d479", false},
		{"missing group", "f47ac10b-58cc-4372-a567", false},
		{"not hex", "zzzzzzzz-58cc-4372-a567-0e02b2c3d479", false},
		{"no dashes", "f47ac10b58cc4372a5670e02b2c3d479", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateArgs(contract, map[string]any{"id": tc.value})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// TestValidateArgs_InputNotMutated tests that validation is pure
func TestValidateArgs_InputNotMutated(t *testing.T) {
	raw := map[string]any{
		"name":    "Lobby",
		"sceneId": validUUID,
	}

	args, err := ValidateArgs(testContract(), raw)
	require.NoError(t, err)

	// The default lands in the copy, never in the caller's map.
	assert.Equal(t, "standard", args["quality"])
	_, present := raw["quality"]
	assert.False(t, present)
}

// TestValidateArgs_UndeclaredArgsDropped tests that arguments outside the
// contract never reach a handler
func TestValidateArgs_UndeclaredArgsDropped(t *testing.T) {
	args, err := ValidateArgs(testContract(), map[string]any{
		"name":       "Lobby",
		"sceneId":    validUUID,
		"surprising": true,
	})
	require.NoError(t, err)

	_, present := args["surprising"]
	assert.False(t, present)
}
