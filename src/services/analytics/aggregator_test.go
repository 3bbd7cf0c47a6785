package analytics

import (
	"testing"

	"Backend-FormCraft/src/fieldtypes"
	"Backend-FormCraft/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ratingForm() *models.Form {
	return &models.Form{
		ID:    primitive.NewObjectID(),
		Title: "Session feedback",
		Fields: []models.FormField{
			{Type: fieldtypes.Radio, Name: "rating", Label: "Rating", Required: true, Order: 1,
				Options: []models.FieldOption{
					{Value: "1", Label: "1"}, {Value: "2", Label: "2"}, {Value: "3", Label: "3"},
					{Value: "4", Label: "4"}, {Value: "5", Label: "5"},
				}},
			{Type: fieldtypes.Number, Name: "age", Label: "Age", Order: 2},
			{Type: fieldtypes.Text, Name: "comment", Label: "Comment", Order: 3},
		},
	}
}

func answer(name, label, fieldType string, value any) models.Answer {
	return models.Answer{FieldName: name, FieldLabel: label, FieldType: fieldType, Value: value}
}

func TestAggregate(t *testing.T) {
	t.Run("TestEmptyCorpus", func(t *testing.T) {
		form := ratingForm()
		out := Aggregate(form, nil)

		assert.Equal(t, form.ID.Hex(), out.FormID)
		assert.Equal(t, 0, out.TotalResponses)
		assert.Equal(t, 0.0, out.CompletionRate)
		assert.Nil(t, out.AverageCompletionTime)

		// every live field still gets an entry so the dashboard can render
		require.Len(t, out.Fields, 3)
		assert.Equal(t, "rating", out.Fields[0].FieldName)
		assert.Equal(t, 0, out.Fields[0].ResponseCount)
	})

	t.Run("TestChoiceDistribution", func(t *testing.T) {
		form := ratingForm()
		responses := []models.Response{
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "5")}},
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "3")}},
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "5")}},
		}

		out := Aggregate(form, responses)
		rating := out.Fields[0]
		assert.Equal(t, 3, rating.ResponseCount)
		assert.Equal(t, map[string]int{"5": 2, "3": 1}, rating.Distribution)
		assert.Equal(t, "5", rating.MostCommonValue)
	})

	t.Run("TestMostCommonTieBreaksOnFirstSeen", func(t *testing.T) {
		form := ratingForm()
		responses := []models.Response{
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "2")}},
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "4")}},
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "4")}},
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "2")}},
		}

		out := Aggregate(form, responses)
		assert.Equal(t, "2", out.Fields[0].MostCommonValue)
	})

	t.Run("TestNumericSummary", func(t *testing.T) {
		form := ratingForm()
		responses := []models.Response{
			{Answers: []models.Answer{answer("age", "Age", fieldtypes.Number, 20.0)}},
			{Answers: []models.Answer{answer("age", "Age", fieldtypes.Number, int32(30))}},
			{Answers: []models.Answer{answer("age", "Age", fieldtypes.Number, "40")}},
		}

		out := Aggregate(form, responses)
		age := out.Fields[1]
		require.NotNil(t, age.NumericSummary)
		assert.Equal(t, 20.0, age.NumericSummary.Min)
		assert.Equal(t, 40.0, age.NumericSummary.Max)
		assert.Equal(t, 30.0, age.NumericSummary.Mean)
		assert.Nil(t, age.Distribution)
	})

	t.Run("TestMultiChoiceCountsEverySelection", func(t *testing.T) {
		form := &models.Form{
			ID: primitive.NewObjectID(),
			Fields: []models.FormField{
				{Type: fieldtypes.Checkbox, Name: "topics", Label: "Topics", Order: 1,
					Options: []models.FieldOption{{Value: "go", Label: "Go"}, {Value: "rust", Label: "Rust"}}},
			},
		}
		responses := []models.Response{
			{Answers: []models.Answer{answer("topics", "Topics", fieldtypes.Checkbox, []any{"go", "rust"})}},
			{Answers: []models.Answer{answer("topics", "Topics", fieldtypes.Checkbox, primitive.A{"go"})}},
		}

		out := Aggregate(form, responses)
		topics := out.Fields[0]
		assert.Equal(t, 2, topics.ResponseCount)
		assert.Equal(t, map[string]int{"go": 2, "rust": 1}, topics.Distribution)
	})

	t.Run("TestRenamedFieldKeepsSnapshot", func(t *testing.T) {
		// answers stored under an old field name keep aggregating under the
		// stored snapshot, never re-resolved against the live schema
		form := ratingForm()
		responses := []models.Response{
			{Answers: []models.Answer{answer("old_rating", "Old rating", fieldtypes.Radio, "4")}},
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "5")}},
		}

		out := Aggregate(form, responses)
		require.Len(t, out.Fields, 4)

		var snapshot *models.FieldAnalytics
		for i := range out.Fields {
			if out.Fields[i].FieldName == "old_rating" {
				snapshot = &out.Fields[i]
			}
		}
		require.NotNil(t, snapshot)
		assert.Equal(t, "Old rating", snapshot.FieldLabel)
		assert.Equal(t, fieldtypes.Radio, snapshot.FieldType)
		assert.Equal(t, map[string]int{"4": 1}, snapshot.Distribution)
	})

	t.Run("TestCompletionRate", func(t *testing.T) {
		form := ratingForm() // only "rating" is required
		responses := []models.Response{
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "5")}},
			{Answers: []models.Answer{answer("comment", "Comment", fieldtypes.Text, "nice")}},
			{Answers: []models.Answer{answer("rating", "Rating", fieldtypes.Radio, "3")}},
			{Answers: []models.Answer{}},
		}

		out := Aggregate(form, responses)
		assert.Equal(t, 4, out.TotalResponses)
		assert.Equal(t, 0.5, out.CompletionRate)
	})

	t.Run("TestAverageCompletionTime", func(t *testing.T) {
		form := ratingForm()
		responses := []models.Response{
			{Meta: models.SubmissionMeta{DurationSeconds: 30}},
			{Meta: models.SubmissionMeta{DurationSeconds: 90}},
			{}, // no duration recorded; excluded from the average
		}

		out := Aggregate(form, responses)
		require.NotNil(t, out.AverageCompletionTime)
		assert.Equal(t, 60.0, *out.AverageCompletionTime)
	})

	t.Run("TestCorruptValueSkipped", func(t *testing.T) {
		form := ratingForm()
		responses := []models.Response{
			{Answers: []models.Answer{answer("age", "Age", fieldtypes.Number, map[string]any{"bad": true})}},
			{Answers: []models.Answer{answer("age", "Age", fieldtypes.Number, 25)}},
		}

		out := Aggregate(form, responses)
		age := out.Fields[1]
		assert.Equal(t, 1, age.ResponseCount)
		require.NotNil(t, age.NumericSummary)
		assert.Equal(t, 25.0, age.NumericSummary.Mean)
	})

	t.Run("TestTextFieldCountsOnly", func(t *testing.T) {
		form := ratingForm()
		responses := []models.Response{
			{Answers: []models.Answer{answer("comment", "Comment", fieldtypes.Text, "great talk")}},
		}

		out := Aggregate(form, responses)
		comment := out.Fields[2]
		assert.Equal(t, 1, comment.ResponseCount)
		assert.Nil(t, comment.Distribution)
		assert.Nil(t, comment.NumericSummary)
		assert.Empty(t, comment.MostCommonValue)
	})
}
