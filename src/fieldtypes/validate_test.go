package fieldtypes

import (
	"testing"

	"Backend-FormCraft/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(v float64) *float64 { return &v }

func TestRegistry(t *testing.T) {
	t.Run("TestAllTypesRegistered", func(t *testing.T) {
		for _, ft := range []string{Text, Textarea, Select, Checkbox, Radio, Number, Email, Date, File} {
			assert.True(t, Known(ft), ft)
			desc, ok := Describe(ft)
			assert.True(t, ok)
			assert.NotNil(t, desc.Validate)
		}
	})

	t.Run("TestUnknownType", func(t *testing.T) {
		assert.False(t, Known("rating"))
		_, ok := Describe("rating")
		assert.False(t, ok)
	})

	t.Run("TestChoiceTypesNeedOptions", func(t *testing.T) {
		assert.True(t, NeedsOptions(Select))
		assert.True(t, NeedsOptions(Radio))
		assert.True(t, NeedsOptions(Checkbox))
		assert.False(t, NeedsOptions(Text))
		assert.False(t, NeedsOptions(Number))
	})
}

func TestValidateNumber(t *testing.T) {
	field := &models.FormField{
		Type: Number, Name: "age", Label: "Age",
		Validation: &models.FieldValidation{Min: floatPtr(1), Max: floatPtr(5)},
	}

	t.Run("TestNumericStringCoerced", func(t *testing.T) {
		value, ferr := validateNumber(field, "3")
		require.Nil(t, ferr)
		assert.Equal(t, 3.0, value)
	})

	t.Run("TestAboveMax", func(t *testing.T) {
		_, ferr := validateNumber(field, "6")
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrOutOfRange, ferr.Kind)
		assert.Equal(t, "age", ferr.Field)
	})

	t.Run("TestBelowMin", func(t *testing.T) {
		_, ferr := validateNumber(field, 0)
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrOutOfRange, ferr.Kind)
	})

	t.Run("TestNotANumber", func(t *testing.T) {
		_, ferr := validateNumber(field, "abc")
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrInvalidFormat, ferr.Kind)
	})

	t.Run("TestBsonIntegerTypes", func(t *testing.T) {
		value, ferr := validateNumber(field, int32(4))
		require.Nil(t, ferr)
		assert.Equal(t, 4.0, value)

		value, ferr = validateNumber(field, int64(2))
		require.Nil(t, ferr)
		assert.Equal(t, 2.0, value)
	})

	t.Run("TestCustomMessageOnRangeViolation", func(t *testing.T) {
		custom := &models.FormField{
			Type: Number, Name: "rating", Label: "Rating",
			Validation: &models.FieldValidation{Max: floatPtr(5), Message: "rate between 1 and 5"},
		}
		_, ferr := validateNumber(custom, 9)
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrOutOfRange, ferr.Kind)
		assert.Equal(t, "rate between 1 and 5", ferr.Message)
	})
}

func TestValidateText(t *testing.T) {
	t.Run("TestLengthBounds", func(t *testing.T) {
		field := &models.FormField{
			Type: Text, Name: "bio", Label: "Bio",
			Validation: &models.FieldValidation{Min: floatPtr(3), Max: floatPtr(5)},
		}

		value, ferr := validateText(field, "abcd")
		require.Nil(t, ferr)
		assert.Equal(t, "abcd", value)

		_, ferr = validateText(field, "ab")
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrOutOfRange, ferr.Kind)

		_, ferr = validateText(field, "abcdef")
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrOutOfRange, ferr.Kind)
	})

	t.Run("TestPattern", func(t *testing.T) {
		field := &models.FormField{
			Type: Text, Name: "code", Label: "Code",
			Validation: &models.FieldValidation{Pattern: `^[A-Z]{3}-\d{4}$`},
		}

		value, ferr := validateText(field, "ABC-1234")
		require.Nil(t, ferr)
		assert.Equal(t, "ABC-1234", value)

		_, ferr = validateText(field, "abc-1234")
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrInvalidFormat, ferr.Kind)
	})

	t.Run("TestBadPatternRejectsValue", func(t *testing.T) {
		// an uncompilable pattern must never silently accept input
		field := &models.FormField{
			Type: Text, Name: "code", Label: "Code",
			Validation: &models.FieldValidation{Pattern: `([`},
		}
		_, ferr := validateText(field, "anything")
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrInvalidFormat, ferr.Kind)
	})

	t.Run("TestNonString", func(t *testing.T) {
		field := &models.FormField{Type: Text, Name: "bio", Label: "Bio"}
		_, ferr := validateText(field, 42)
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrInvalidFormat, ferr.Kind)
	})
}

func TestValidateEmail(t *testing.T) {
	field := &models.FormField{Type: Email, Name: "email", Label: "Email"}

	t.Run("TestValidEmails", func(t *testing.T) {
		for _, s := range []string{"user@example.com", "a.b+c@sub.domain.org"} {
			value, ferr := validateEmail(field, s)
			require.Nil(t, ferr, s)
			assert.Equal(t, s, value)
		}
	})

	t.Run("TestInvalidEmails", func(t *testing.T) {
		for _, s := range []string{"not-an-email", "a @b.com", "a@b", "@example.com"} {
			_, ferr := validateEmail(field, s)
			require.NotNil(t, ferr, s)
			assert.Equal(t, models.ErrInvalidFormat, ferr.Kind)
		}
	})
}

func TestValidateDate(t *testing.T) {
	field := &models.FormField{Type: Date, Name: "birthday", Label: "Birthday"}

	t.Run("TestCanonicalForm", func(t *testing.T) {
		value, ferr := validateDate(field, "2024-06-15")
		require.Nil(t, ferr)
		assert.Equal(t, "2024-06-15", value)
	})

	t.Run("TestTimestampNormalized", func(t *testing.T) {
		value, ferr := validateDate(field, "2024-06-15T10:30:00Z")
		require.Nil(t, ferr)
		assert.Equal(t, "2024-06-15", value)
	})

	t.Run("TestInvalidDate", func(t *testing.T) {
		for _, s := range []string{"15/06/2024", "June 15", "2024-13-45"} {
			_, ferr := validateDate(field, s)
			require.NotNil(t, ferr, s)
			assert.Equal(t, models.ErrInvalidFormat, ferr.Kind)
		}
	})
}

func TestValidateChoices(t *testing.T) {
	options := []models.FieldOption{
		{Value: "red", Label: "Red"},
		{Value: "green", Label: "Green"},
		{Value: "blue", Label: "Blue"},
	}

	t.Run("TestSingleChoiceValid", func(t *testing.T) {
		field := &models.FormField{Type: Select, Name: "color", Label: "Color", Options: options}
		value, ferr := validateSingleChoice(field, "green")
		require.Nil(t, ferr)
		assert.Equal(t, "green", value)
	})

	t.Run("TestSingleChoiceUnknownOption", func(t *testing.T) {
		field := &models.FormField{Type: Radio, Name: "color", Label: "Color", Options: options}
		_, ferr := validateSingleChoice(field, "purple")
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrInvalidOption, ferr.Kind)
	})

	t.Run("TestMultiChoiceValid", func(t *testing.T) {
		field := &models.FormField{Type: Checkbox, Name: "colors", Label: "Colors", Options: options}
		value, ferr := validateMultiChoice(field, []any{"red", "blue"})
		require.Nil(t, ferr)
		assert.Equal(t, []string{"red", "blue"}, value)
	})

	t.Run("TestMultiChoiceDuplicate", func(t *testing.T) {
		field := &models.FormField{Type: Checkbox, Name: "colors", Label: "Colors", Options: options}
		_, ferr := validateMultiChoice(field, []any{"red", "red"})
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrDuplicateOption, ferr.Kind)
	})

	t.Run("TestMultiChoiceUnknownOption", func(t *testing.T) {
		field := &models.FormField{Type: Checkbox, Name: "colors", Label: "Colors", Options: options}
		_, ferr := validateMultiChoice(field, []string{"red", "yellow"})
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrInvalidOption, ferr.Kind)
	})

	t.Run("TestMultiChoiceBsonArray", func(t *testing.T) {
		field := &models.FormField{Type: Checkbox, Name: "colors", Label: "Colors", Options: options}
		value, ferr := validateMultiChoice(field, primitive.A{"blue"})
		require.Nil(t, ferr)
		assert.Equal(t, []string{"blue"}, value)
	})
}

func TestValidateFile(t *testing.T) {
	field := &models.FormField{Type: File, Name: "resume", Label: "Resume"}

	t.Run("TestTokenAccepted", func(t *testing.T) {
		value, ferr := validateFile(field, "upload-token-123")
		require.Nil(t, ferr)
		assert.Equal(t, "upload-token-123", value)
	})

	t.Run("TestEmptyTokenRejected", func(t *testing.T) {
		_, ferr := validateFile(field, "")
		require.NotNil(t, ferr)
		assert.Equal(t, models.ErrInvalidFormat, ferr.Kind)
	})
}
