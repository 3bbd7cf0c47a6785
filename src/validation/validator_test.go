package validation

import (
	"testing"

	"Backend-FormCraft/src/fieldtypes"
	"Backend-FormCraft/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func surveyFields() []models.FormField {
	return []models.FormField{
		{Type: fieldtypes.Text, Name: "name", Label: "Name", Required: true, Order: 1},
		{Type: fieldtypes.Email, Name: "email", Label: "Email", Required: true, Order: 2},
		{
			Type: fieldtypes.Number, Name: "rating", Label: "Rating", Required: false, Order: 3,
			Validation: &models.FieldValidation{Min: floatPtr(1), Max: floatPtr(5)},
		},
		{
			Type: fieldtypes.Checkbox, Name: "topics", Label: "Topics", Required: false, Order: 4,
			Options: []models.FieldOption{{Value: "go", Label: "Go"}, {Value: "rust", Label: "Rust"}},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("TestValidSubmission", func(t *testing.T) {
		answers, errs := Validate(surveyFields(), map[string]any{
			"name":   "Alice",
			"email":  "alice@example.com",
			"rating": "3",
			"topics": []any{"go", "rust"},
		})
		require.Empty(t, errs)
		require.Len(t, answers, 4)

		// answers come back in field display order with snapshots attached
		assert.Equal(t, "name", answers[0].FieldName)
		assert.Equal(t, "Name", answers[0].FieldLabel)
		assert.Equal(t, fieldtypes.Text, answers[0].FieldType)

		// numeric string normalized to a number
		assert.Equal(t, 3.0, answers[2].Value)
		assert.Equal(t, []string{"go", "rust"}, answers[3].Value)
	})

	t.Run("TestAllErrorsCollected", func(t *testing.T) {
		answers, errs := Validate(surveyFields(), map[string]any{
			"email":  "not-an-email",
			"rating": "6",
			"topics": []any{"go", "go"},
		})
		assert.Nil(t, answers)
		require.Len(t, errs, 4)

		byField := make(map[string]models.FieldError)
		for _, e := range errs {
			byField[e.Field] = e
		}
		assert.Equal(t, models.ErrRequiredMissing, byField["name"].Kind)
		assert.Equal(t, models.ErrInvalidFormat, byField["email"].Kind)
		assert.Equal(t, models.ErrOutOfRange, byField["rating"].Kind)
		assert.Equal(t, models.ErrDuplicateOption, byField["topics"].Kind)
	})

	t.Run("TestRequiredMissingMessage", func(t *testing.T) {
		_, errs := Validate(surveyFields(), map[string]any{
			"email": "alice@example.com",
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "Name is required", errs[0].Message)
	})

	t.Run("TestEmptyValuesCountAsMissing", func(t *testing.T) {
		_, errs := Validate(surveyFields(), map[string]any{
			"name":  "",
			"email": "alice@example.com",
		})
		require.Len(t, errs, 1)
		assert.Equal(t, models.ErrRequiredMissing, errs[0].Kind)
	})

	t.Run("TestOptionalFieldAbsent", func(t *testing.T) {
		answers, errs := Validate(surveyFields(), map[string]any{
			"name":  "Alice",
			"email": "alice@example.com",
		})
		require.Empty(t, errs)
		assert.Len(t, answers, 2)
	})

	t.Run("TestUnknownKeysIgnored", func(t *testing.T) {
		answers, errs := Validate(surveyFields(), map[string]any{
			"name":       "Alice",
			"email":      "alice@example.com",
			"extraField": "from a newer client",
		})
		require.Empty(t, errs)
		require.Len(t, answers, 2)
		for _, a := range answers {
			assert.NotEqual(t, "extraField", a.FieldName)
		}
	})

	t.Run("TestUnknownFieldTypeRejected", func(t *testing.T) {
		fields := []models.FormField{
			{Type: "rating-stars", Name: "stars", Label: "Stars", Order: 1},
		}
		_, errs := Validate(fields, map[string]any{"stars": "5"})
		require.Len(t, errs, 1)
		assert.Equal(t, models.ErrInvalidFormat, errs[0].Kind)
	})

	t.Run("TestIdempotentRevalidation", func(t *testing.T) {
		fields := surveyFields()
		raw := map[string]any{
			"name":   "Alice",
			"email":  "alice@example.com",
			"rating": "4",
			"topics": []any{"go"},
		}

		first, errs := Validate(fields, raw)
		require.Empty(t, errs)

		// normalized values fed back in validate to the same result
		normalized := make(map[string]any, len(first))
		for _, a := range first {
			normalized[a.FieldName] = a.Value
		}
		second, errs := Validate(fields, normalized)
		require.Empty(t, errs)
		assert.Equal(t, first, second)
	})

	t.Run("TestOrderDrivesReportSequence", func(t *testing.T) {
		fields := []models.FormField{
			{Type: fieldtypes.Text, Name: "second", Label: "Second", Required: true, Order: 2},
			{Type: fieldtypes.Text, Name: "first", Label: "First", Required: true, Order: 1},
		}
		_, errs := Validate(fields, map[string]any{})
		require.Len(t, errs, 2)
		assert.Equal(t, "first", errs[0].Field)
		assert.Equal(t, "second", errs[1].Field)
	})

	t.Run("TestInputSliceNotReordered", func(t *testing.T) {
		fields := []models.FormField{
			{Type: fieldtypes.Text, Name: "b", Label: "B", Order: 2},
			{Type: fieldtypes.Text, Name: "a", Label: "A", Order: 1},
		}
		Validate(fields, map[string]any{})
		assert.Equal(t, "b", fields[0].Name)
	})
}
