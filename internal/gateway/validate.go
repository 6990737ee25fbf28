package gateway

import (
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"
)

// uuidPattern matches the canonical 8-4-4-4-12 textual form with a version
// nibble in 1..5 and a variant nibble in 8, 9, a, b.
var uuidPattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// ValidationError reports every contract violation found in one call's
// arguments. All violations are collected before failing so the caller sees
// every problem at once instead of fixing them one at a time.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid arguments: " + strings.Join(e.Violations, "; ")
}

// ValidateArgs checks raw arguments against the contract. On success it
// returns a copy of the declared arguments with defaults applied for any
// optional field the caller omitted. It is a pure function over its inputs.
func ValidateArgs(contract Contract, raw map[string]any) (map[string]any, error) {
	var violations []string
	validated := make(map[string]any, len(contract))

	// Iterate in name order so the joined failure message is deterministic.
	for _, name := range slices.Sorted(maps.Keys(contract)) {
		field := contract[name]
		value, present := raw[name]

		if !present || value == nil {
			if field.Required {
				violations = append(violations, fmt.Sprintf("%s is required", name))
				continue
			}
			if field.Default != nil {
				validated[name] = field.Default
			}
			continue
		}

		if fieldViolations := checkField(name, field, value); len(fieldViolations) > 0 {
			violations = append(violations, fieldViolations...)
			continue
		}

		validated[name] = value
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return validated, nil
}

// checkField validates one present value against its declaration, returning
// every violation found.
func checkField(name string, field Field, value any) []string {
	switch field.Type {
	case FieldString:
		s, ok := value.(string)
		if !ok {
			return []string{fmt.Sprintf("%s must be a string", name)}
		}
		return checkString(name, field, s)
	case FieldNumber, FieldInteger:
		return checkNumeric(name, field, value)
	case FieldBoolean:
		if _, ok := value.(bool); !ok {
			return []string{fmt.Sprintf("%s must be a boolean", name)}
		}
	case FieldObject:
		if _, ok := value.(map[string]any); !ok {
			return []string{fmt.Sprintf("%s must be an object", name)}
		}
	case FieldArray:
		if _, ok := value.([]any); !ok {
			return []string{fmt.Sprintf("%s must be an array", name)}
		}
	default:
		return []string{fmt.Sprintf("%s has unsupported type %q", name, field.Type)}
	}
	return nil
}

func checkString(name string, field Field, s string) []string {
	var violations []string

	if field.MinLen != nil && len(s) < *field.MinLen {
		violations = append(violations,
			fmt.Sprintf("%s must be at least %d characters", name, *field.MinLen))
	}
	if field.MaxLen != nil && len(s) > *field.MaxLen {
		violations = append(violations,
			fmt.Sprintf("%s must be at most %d characters", name, *field.MaxLen))
	}
	if len(field.Enum) > 0 && !slices.Contains(field.Enum, s) {
		violations = append(violations,
			fmt.Sprintf("%s must be one of: %s", name, strings.Join(field.Enum, ", ")))
	}
	if field.Format == FormatUUID && !uuidPattern.MatchString(s) {
		violations = append(violations, fmt.Sprintf("%s must be a valid UUID", name))
	}

	return violations
}

func checkNumeric(name string, field Field, value any) []string {
	n, ok := toFloat(value)
	if !ok {
		return []string{fmt.Sprintf("%s must be a number", name)}
	}

	var violations []string

	if field.Type == FieldInteger && n != math.Trunc(n) {
		violations = append(violations, fmt.Sprintf("%s must be an integer", name))
	}
	if field.Min != nil && n < *field.Min {
		violations = append(violations,
			fmt.Sprintf("%s must be at least %v", name, *field.Min))
	}
	if field.Max != nil && n > *field.Max {
		violations = append(violations,
			fmt.Sprintf("%s must be at most %v", name, *field.Max))
	}

	return violations
}

// toFloat widens the numeric representations a JSON decoder or an in-process
// caller might hand us. Booleans and strings are not numbers.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
