package jobs

import (
	"Backend-FormCraft/src/database"
	"context"
	"encoding/json"
	"log"

	"Backend-FormCraft/src/models"
	"Backend-FormCraft/src/services/analytics"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleCloseFormTask moves a form to closed after its deadline. A deleted
// form is not an error; the task is simply skipped.
func HandleCloseFormTask(ctx context.Context, t *asynq.Task) error {
	var payload FormPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(payload.FormID)
	if err != nil {
		return err
	}

	var form models.Form
	err = database.FormCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Println("[jobs] form not found, skipping close task:", payload.FormID)
			return nil
		}
		return err
	}

	if form.Status != models.FormStatusActive {
		// already closed or archived by hand; nothing to do
		return nil
	}

	_, err = database.FormCollection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.FormStatusActive},
		bson.M{"$set": bson.M{"status": models.FormStatusClosed}},
	)
	if err != nil {
		return err
	}

	log.Println("[jobs] form auto-closed after deadline:", payload.FormID)
	return nil
}

// HandleRefreshAnalyticsTask recomputes a form's analytics and warms the
// cache so the next analytics request does not pay for a full corpus scan.
func HandleRefreshAnalyticsTask(ctx context.Context, t *asynq.Task) error {
	var payload FormPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(payload.FormID)
	if err != nil {
		return err
	}

	if _, err := analytics.Refresh(ctx, id); err != nil {
		log.Println("[jobs] analytics refresh failed:", err)
		return err
	}
	return nil
}

// NewServeMux wires all task handlers for the background worker process.
func NewServeMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCloseForm, HandleCloseFormTask)
	mux.HandleFunc(TypeRefreshAnalytics, HandleRefreshAnalyticsTask)
	return mux
}

// RunWorker starts the Asynq worker loop. It blocks until the server stops.
func RunWorker() error {
	if database.RedisURI == "" {
		log.Println("[jobs] Redis not configured, worker not started")
		return nil
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 5},
	)
	return srv.Run(NewServeMux())
}
