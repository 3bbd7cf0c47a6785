// Package validation checks a raw answer set against a form's field
// definitions and produces either normalized answers ready for storage or
// the full list of field-level violations. It is pure: no storage access, no
// shared state, safe for concurrent use.
package validation

import (
	"sort"

	"Backend-FormCraft/src/fieldtypes"
	"Backend-FormCraft/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validate walks the field definitions in display order and checks the raw
// value submitted for each one. Every violation is collected; the validator
// never stops at the first failure, so the caller can report all problems in
// one round trip.
//
// On success errs is empty and answers holds one normalized entry per
// present field, carrying a snapshot of the field's label and type. Raw keys
// that match no field definition are ignored, which keeps older servers
// compatible with newer clients.
func Validate(fields []models.FormField, raw map[string]any) (answers []models.Answer, errs []models.FieldError) {
	ordered := sortFields(fields)

	for i := range ordered {
		field := &ordered[i]
		value, present := raw[field.Name]

		if !present || isEmpty(value) {
			if field.Required {
				errs = append(errs, models.FieldError{
					Field:   field.Name,
					Kind:    models.ErrRequiredMissing,
					Message: field.Label + " is required",
				})
			}
			continue
		}

		desc, ok := fieldtypes.Describe(field.Type)
		if !ok {
			// unknown type in a stored schema; reject the value rather than
			// silently accepting unvalidated input
			errs = append(errs, models.FieldError{
				Field:   field.Name,
				Kind:    models.ErrInvalidFormat,
				Message: "unknown field type: " + field.Type,
			})
			continue
		}

		canonical, ferr := desc.Validate(field, value)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}

		answers = append(answers, models.Answer{
			FieldName:  field.Name,
			FieldLabel: field.Label,
			FieldType:  field.Type,
			Value:      canonical,
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return answers, nil
}

// sortFields orders fields by Order, keeping the original slice position as
// tie-breaker. The input slice is not modified.
func sortFields(fields []models.FormField) []models.FormField {
	ordered := make([]models.FormField, len(fields))
	copy(ordered, fields)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}

// isEmpty treats nil, empty strings and empty arrays as absent values for
// the required-field check.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case primitive.A:
		return len(v) == 0
	}
	return false
}
