package gateway

import (
	"maps"
	"slices"
)

// JSONSchema renders a contract as a JSON Schema object. This is the
// discovery surface exposed to callers; validation always re-checks against
// the contract at call time.
func JSONSchema(contract Contract) map[string]any {
	properties := make(map[string]any, len(contract))
	var required []string

	for _, name := range slices.Sorted(maps.Keys(contract)) {
		field := contract[name]

		property := map[string]any{"type": string(field.Type)}
		if field.Description != "" {
			property["description"] = field.Description
		}
		if field.Min != nil {
			property["minimum"] = *field.Min
		}
		if field.Max != nil {
			property["maximum"] = *field.Max
		}
		if field.MinLen != nil {
			property["minLength"] = *field.MinLen
		}
		if field.MaxLen != nil {
			property["maxLength"] = *field.MaxLen
		}
		if len(field.Enum) > 0 {
			property["enum"] = field.Enum
		}
		if field.Format != "" {
			property["format"] = field.Format
		}
		if field.Default != nil {
			property["default"] = field.Default
		}
		properties[name] = property

		if field.Required {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
