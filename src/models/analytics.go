package models

// FieldAnalytics is the per-field slice of form analytics. Distribution and
// MostCommonValue are filled for choice fields, NumericSummary for number
// fields; every field reports at least its response count.
type FieldAnalytics struct {
	FieldName       string         `json:"fieldName"`
	FieldLabel      string         `json:"fieldLabel"`
	FieldType       string         `json:"fieldType"`
	ResponseCount   int            `json:"responseCount"`
	MostCommonValue string         `json:"mostCommonValue,omitempty"`
	Distribution    map[string]int `json:"distribution,omitempty"`
	NumericSummary  *NumericSummary `json:"numericSummary,omitempty"`
}

type NumericSummary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

type FormAnalytics struct {
	FormID                string           `json:"formId"`
	TotalResponses        int              `json:"totalResponses"`
	CompletionRate        float64          `json:"completionRate"`
	AverageCompletionTime *float64         `json:"averageCompletionTime,omitempty"`
	Fields                []FieldAnalytics `json:"fields"`
}
