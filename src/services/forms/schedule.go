package forms

import (
	DB "Backend-FormCraft/src/database"
	"log"
	"time"

	"Backend-FormCraft/src/jobs"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// rescheduleCloseTask replaces any pending close task for the form with one
// scheduled at the deadline. Without a deadline, any pending task is
// cancelled. Scheduling is best-effort: without Redis the deadline is still
// enforced by the submission gate, just without the status flip.
func rescheduleCloseTask(formID primitive.ObjectID, closeAt *time.Time) {
	cancelCloseTask(formID)

	if closeAt == nil || DB.AsynqClient == nil {
		return
	}
	if !closeAt.After(time.Now()) {
		return
	}

	task, err := jobs.NewCloseFormTask(formID.Hex())
	if err != nil {
		log.Println("[forms] build close task failed:", err)
		return
	}

	_, err = DB.AsynqClient.Enqueue(task, asynq.ProcessAt(*closeAt), asynq.TaskID(closeTaskID(formID.Hex())))
	if err != nil {
		log.Println("[forms] enqueue close task failed:", err)
		return
	}
	log.Printf("[forms] close task scheduled form=%s at=%s", formID.Hex(), closeAt.Format(time.RFC3339))
}

func cancelCloseTask(formID primitive.ObjectID) {
	if DB.AsynqClient == nil || DB.RedisURI == "" {
		return
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: DB.RedisURI})
	defer inspector.Close()

	err := inspector.DeleteTask("default", closeTaskID(formID.Hex()))
	if err != nil && err != asynq.ErrTaskNotFound {
		log.Println("[forms] cancel close task failed:", err)
	}
}

func closeTaskID(formID string) string {
	return "form-close-" + formID
}
