// Package analytics computes per-field and per-form statistics over a
// form's stored responses. Aggregate is a pure corpus scan; the service
// layer around it caches results in Redis and refreshes them in the
// background so analytics requests never pay for repeated full scans.
package analytics

import (
	"log"
	"sort"
	"strconv"

	"Backend-FormCraft/src/fieldtypes"
	"Backend-FormCraft/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fieldStat struct {
	name      string
	label     string
	fieldType string
	count     int

	// choice accumulation; valueOrder records first encounter for
	// deterministic tie-breaking
	valueCounts map[string]int
	valueOrder  []string

	// numeric accumulation
	numCount int
	sum      float64
	min      float64
	max      float64
}

// Aggregate scans the corpus once and builds the full analytics document.
//
// Answers always carry the label and type snapshotted at submission time,
// so responses referencing fields that were since renamed or removed still
// aggregate correctly: they show up under their stored name with their
// stored label, never re-resolved against the live schema. Corrupted values
// are logged and skipped; partial analytics beat none.
func Aggregate(form *models.Form, responses []models.Response) models.FormAnalytics {
	stats := make(map[string]*fieldStat)
	var order []string

	// live fields first, in display order
	live := make([]models.FormField, len(form.Fields))
	copy(live, form.Fields)
	sort.SliceStable(live, func(i, j int) bool { return live[i].Order < live[j].Order })
	for _, f := range live {
		stats[f.Name] = &fieldStat{
			name:        f.Name,
			label:       f.Label,
			fieldType:   f.Type,
			valueCounts: make(map[string]int),
		}
		order = append(order, f.Name)
	}

	complete := 0
	durationSum, durationCount := 0, 0

	for i := range responses {
		resp := &responses[i]

		answered := make(map[string]bool, len(resp.Answers))
		for j := range resp.Answers {
			ans := &resp.Answers[j]

			stat, ok := stats[ans.FieldName]
			if !ok {
				// field no longer in the live schema; fall back to the
				// snapshot taken when the answer was stored
				stat = &fieldStat{
					name:        ans.FieldName,
					label:       ans.FieldLabel,
					fieldType:   ans.FieldType,
					valueCounts: make(map[string]int),
				}
				stats[ans.FieldName] = stat
				order = append(order, ans.FieldName)
			}

			if !accumulate(stat, ans) {
				log.Printf("[analytics] skipping corrupt value form=%s field=%s", form.ID.Hex(), ans.FieldName)
				continue
			}
			answered[ans.FieldName] = true
		}

		if allRequiredAnswered(form, answered) {
			complete++
		}
		if resp.Meta.DurationSeconds > 0 {
			durationSum += resp.Meta.DurationSeconds
			durationCount++
		}
	}

	out := models.FormAnalytics{
		FormID:         form.ID.Hex(),
		TotalResponses: len(responses),
		Fields:         make([]models.FieldAnalytics, 0, len(order)),
	}
	if len(responses) > 0 {
		out.CompletionRate = float64(complete) / float64(len(responses))
	}
	if durationCount > 0 {
		avg := float64(durationSum) / float64(durationCount)
		out.AverageCompletionTime = &avg
	}

	for _, name := range order {
		out.Fields = append(out.Fields, summarize(stats[name]))
	}
	return out
}

// accumulate folds one answer into its field's running stats. Returns false
// when the stored value does not match the field type's expected shape.
func accumulate(stat *fieldStat, ans *models.Answer) bool {
	switch {
	case fieldtypes.IsChoice(ans.FieldType):
		values, ok := choiceValues(ans.Value)
		if !ok {
			return false
		}
		for _, v := range values {
			if _, seen := stat.valueCounts[v]; !seen {
				stat.valueOrder = append(stat.valueOrder, v)
			}
			stat.valueCounts[v]++
		}
	case ans.FieldType == fieldtypes.Number:
		n, ok := numericValue(ans.Value)
		if !ok {
			return false
		}
		if stat.numCount == 0 || n < stat.min {
			stat.min = n
		}
		if stat.numCount == 0 || n > stat.max {
			stat.max = n
		}
		stat.sum += n
		stat.numCount++
	}

	stat.count++
	return true
}

func summarize(stat *fieldStat) models.FieldAnalytics {
	fa := models.FieldAnalytics{
		FieldName:     stat.name,
		FieldLabel:    stat.label,
		FieldType:     stat.fieldType,
		ResponseCount: stat.count,
	}

	if len(stat.valueCounts) > 0 {
		fa.Distribution = stat.valueCounts

		// highest count wins; ties go to the value seen first in the corpus
		best := ""
		bestCount := -1
		for _, v := range stat.valueOrder {
			if stat.valueCounts[v] > bestCount {
				best = v
				bestCount = stat.valueCounts[v]
			}
		}
		fa.MostCommonValue = best
	}

	if stat.numCount > 0 {
		fa.NumericSummary = &models.NumericSummary{
			Min:  stat.min,
			Max:  stat.max,
			Mean: stat.sum / float64(stat.numCount),
		}
	}

	return fa
}

func allRequiredAnswered(form *models.Form, answered map[string]bool) bool {
	for i := range form.Fields {
		if form.Fields[i].Required && !answered[form.Fields[i].Name] {
			return false
		}
	}
	return true
}

// choiceValues flattens a stored choice value into the list of selected
// option values. Single-choice answers are one-element lists.
func choiceValues(value any) ([]string, bool) {
	switch v := value.(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case []any:
		return stringItems(v)
	case primitive.A:
		return stringItems(v)
	}
	return nil, false
}

func stringItems(items []any) ([]string, bool) {
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

// numericValue tolerates the numeric representations BSON decoding can
// produce, plus numeric strings from older records.
func numericValue(value any) (float64, bool) {
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
