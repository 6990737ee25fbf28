// Package gateway implements the command dispatch gateway: per-operation
// argument contracts and validation, the static operation registry, failure
// classification into a closed taxonomy, and the dispatcher that ties them
// together under admission control.
package gateway

// FieldType enumerates the argument types a contract can declare. The values
// double as JSON Schema type names for the discovery surface.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldInteger FieldType = "integer"
	FieldBoolean FieldType = "boolean"
	FieldObject  FieldType = "object"
	FieldArray   FieldType = "array"
)

// FormatUUID marks an identifier field that must conform to the canonical
// UUID textual format.
const FormatUUID = "uuid"

// Field declares the contract for one named argument.
type Field struct {
	Type        FieldType
	Description string
	Required    bool
	Min         *float64 // inclusive numeric lower bound
	Max         *float64 // inclusive numeric upper bound
	MinLen      *int     // inclusive string length lower bound
	MaxLen      *int     // inclusive string length upper bound
	Enum        []string // allowed values for string fields
	Format      string   // FormatUUID for identifier fields
	Default     any      // applied when an optional field is omitted
}

// Contract maps argument names to their field declarations.
type Contract map[string]Field
