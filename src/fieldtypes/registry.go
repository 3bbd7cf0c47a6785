package fieldtypes

import (
	"Backend-FormCraft/src/models"
)

// Field type tags. The set is closed: adding a type means adding a
// Descriptor to the registry below.
const (
	Text     = "text"
	Textarea = "textarea"
	Select   = "select"
	Checkbox = "checkbox"
	Radio    = "radio"
	Number   = "number"
	Email    = "email"
	Date     = "date"
	File     = "file"
)

// ValueShape is the canonical storage shape of a validated value.
type ValueShape int

const (
	ShapeString ValueShape = iota
	ShapeNumber
	ShapeStringList
	ShapeFileRef
)

// ValidateFunc checks a raw value against a field definition and returns the
// canonical value on success, or a field error describing the violation. It
// must not be called with an absent value; presence is the validator's job.
type ValidateFunc func(field *models.FormField, value any) (any, *models.FieldError)

// Descriptor couples a field type's storage shape with its validation rule.
type Descriptor struct {
	Shape    ValueShape
	Validate ValidateFunc
}

var registry = map[string]Descriptor{
	Text:     {ShapeString, validateText},
	Textarea: {ShapeString, validateText},
	Select:   {ShapeString, validateSingleChoice},
	Radio:    {ShapeString, validateSingleChoice},
	Checkbox: {ShapeStringList, validateMultiChoice},
	Number:   {ShapeNumber, validateNumber},
	Email:    {ShapeString, validateEmail},
	Date:     {ShapeString, validateDate},
	File:     {ShapeFileRef, validateFile},
}

// Describe returns the descriptor for a field type tag.
func Describe(fieldType string) (Descriptor, bool) {
	d, ok := registry[fieldType]
	return d, ok
}

// Known reports whether the tag names a registered field type.
func Known(fieldType string) bool {
	_, ok := registry[fieldType]
	return ok
}

// NeedsOptions reports whether the type requires a non-empty option list in
// its field definition.
func NeedsOptions(fieldType string) bool {
	switch fieldType {
	case Select, Radio, Checkbox:
		return true
	}
	return false
}

// IsChoice reports whether values of this type are grouped into a frequency
// distribution by the aggregator.
func IsChoice(fieldType string) bool {
	return NeedsOptions(fieldType)
}
