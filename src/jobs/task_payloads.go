package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// TypeCloseForm flips a form to closed once its deadline passes.
	TypeCloseForm = "form:close"
	// TypeRefreshAnalytics recomputes and re-caches a form's analytics.
	TypeRefreshAnalytics = "analytics:refresh"
)

type FormPayload struct {
	FormID string `json:"form_id"`
}

func NewCloseFormTask(formID string) (*asynq.Task, error) {
	payload, err := json.Marshal(FormPayload{FormID: formID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCloseForm, payload), nil
}

func NewRefreshAnalyticsTask(formID string) (*asynq.Task, error) {
	payload, err := json.Marshal(FormPayload{FormID: formID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRefreshAnalytics, payload), nil
}
