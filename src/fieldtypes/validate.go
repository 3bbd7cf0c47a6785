package fieldtypes

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"Backend-FormCraft/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permissive RFC-5322 subset: something @ something . something, no spaces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Accepted date layouts. The canonical stored form is dateLayout.
const dateLayout = "2006-01-02"

var dateLayouts = []string{
	dateLayout,
	"2006-01-02T15:04:05Z07:00", // RFC3339
	"2006-01-02T15:04:05",
}

func fieldErr(field *models.FormField, kind, message string) *models.FieldError {
	if field.Validation != nil && field.Validation.Message != "" && kind != models.ErrInvalidFormat {
		// custom message overrides constraint violations, but a shape
		// mismatch keeps the generic message so clients can tell them apart
		message = field.Validation.Message
	}
	return &models.FieldError{Field: field.Name, Kind: kind, Message: message}
}

func patternErr(field *models.FormField) *models.FieldError {
	message := "invalid format"
	if field.Validation != nil && field.Validation.Message != "" {
		message = field.Validation.Message
	}
	return &models.FieldError{Field: field.Name, Kind: models.ErrInvalidFormat, Message: message}
}

func validateText(field *models.FormField, value any) (any, *models.FieldError) {
	s, ok := value.(string)
	if !ok {
		return nil, fieldErr(field, models.ErrInvalidFormat, "value must be a string")
	}

	if v := field.Validation; v != nil {
		if v.Min != nil && float64(len(s)) < *v.Min {
			return nil, fieldErr(field, models.ErrOutOfRange,
				fmt.Sprintf("must be at least %d characters", int(*v.Min)))
		}
		if v.Max != nil && float64(len(s)) > *v.Max {
			return nil, fieldErr(field, models.ErrOutOfRange,
				fmt.Sprintf("must be at most %d characters", int(*v.Max)))
		}
		if v.Pattern != "" {
			re, err := regexp.Compile(v.Pattern)
			if err != nil || !re.MatchString(s) {
				return nil, patternErr(field)
			}
		}
	}

	return s, nil
}

func validateEmail(field *models.FormField, value any) (any, *models.FieldError) {
	s, ok := value.(string)
	if !ok || !emailPattern.MatchString(s) {
		return nil, fieldErr(field, models.ErrInvalidFormat, "must be a valid email address")
	}
	return s, nil
}

func validateNumber(field *models.FormField, value any) (any, *models.FieldError) {
	n, ok := toFloat(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fieldErr(field, models.ErrInvalidFormat, "value must be a number")
	}

	if v := field.Validation; v != nil {
		if v.Min != nil && n < *v.Min {
			return nil, fieldErr(field, models.ErrOutOfRange,
				fmt.Sprintf("must be at least %v", *v.Min))
		}
		if v.Max != nil && n > *v.Max {
			return nil, fieldErr(field, models.ErrOutOfRange,
				fmt.Sprintf("must be at most %v", *v.Max))
		}
	}

	return n, nil
}

func validateDate(field *models.FormField, value any) (any, *models.FieldError) {
	s, ok := value.(string)
	if !ok {
		return nil, fieldErr(field, models.ErrInvalidFormat, "value must be a date string")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	return nil, fieldErr(field, models.ErrInvalidFormat, "must be an ISO 8601 date")
}

func validateSingleChoice(field *models.FormField, value any) (any, *models.FieldError) {
	s, ok := value.(string)
	if !ok {
		return nil, fieldErr(field, models.ErrInvalidFormat, "value must be a string")
	}
	for _, opt := range field.Options {
		if opt.Value == s {
			return s, nil
		}
	}
	return nil, fieldErr(field, models.ErrInvalidOption, "value is not one of the allowed options")
}

func validateMultiChoice(field *models.FormField, value any) (any, *models.FieldError) {
	items, ok := toStringSlice(value)
	if !ok {
		return nil, fieldErr(field, models.ErrInvalidFormat, "value must be an array of strings")
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			return nil, fieldErr(field, models.ErrDuplicateOption, "duplicate option selected: "+item)
		}
		seen[item] = true

		found := false
		for _, opt := range field.Options {
			if opt.Value == item {
				found = true
				break
			}
		}
		if !found {
			return nil, fieldErr(field, models.ErrInvalidOption, "value is not one of the allowed options: "+item)
		}
	}

	return items, nil
}

func validateFile(field *models.FormField, value any) (any, *models.FieldError) {
	// Upload tokens are opaque references issued by the upload service.
	// Content validation is not this layer's business.
	s, ok := value.(string)
	if !ok || s == "" {
		return nil, fieldErr(field, models.ErrInvalidFormat, "value must be an upload token")
	}
	return s, nil
}

// toFloat coerces JSON and BSON numeric representations, plus numeric
// strings, to float64.
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
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	}
	return 0, false
}

// toStringSlice accepts []string, []any from JSON decoding and primitive.A
// from BSON decoding.
func toStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		return anySliceToStrings(v)
	case primitive.A:
		return anySliceToStrings(v)
	}
	return nil, false
}

func anySliceToStrings(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
