// Package responses implements the submission flow: gate checks, answer
// validation, atomic quota reservation and persistence, in that order.
package responses

import (
	DB "Backend-FormCraft/src/database"
	"context"
	"errors"
	"log"
	"time"

	"Backend-FormCraft/src/fieldtypes"
	"Backend-FormCraft/src/jobs"
	"Backend-FormCraft/src/models"
	"Backend-FormCraft/src/services/analytics"
	"Backend-FormCraft/src/services/forms"
	"Backend-FormCraft/src/services/uploads"
	"Backend-FormCraft/src/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrResponseNotFound = errors.New("response not found")

// SubmitResult is the accepted outcome of a submission.
type SubmitResult struct {
	ResponseID primitive.ObjectID `json:"responseId"`
	Answers    []models.Answer    `json:"answers"`
}

// Submit runs the full submission pipeline for one raw answer set:
//
//  1. load the form (form_not_found)
//  2. gate policy checks (cheap, before any per-field work)
//  3. validate and normalize the answers, collecting every field error
//  4. resolve upload tokens into file metadata snapshots
//  5. atomically reserve a response slot (the authoritative quota check)
//  6. persist; on failure release the slot again
//
// Exactly one of the three return values is set: the result, a gate error,
// or the list of field errors.
func Submit(ctx context.Context, formID primitive.ObjectID, identity models.SubmitterIdentity, rawValues map[string]any, meta models.SubmissionMeta) (*SubmitResult, *forms.GateError, []models.FieldError) {
	var form models.Form
	err := DB.FormCollection.FindOne(ctx, bson.M{"_id": formID}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, forms.ErrFormNotFound, nil
		}
		return nil, forms.ErrStorageUnavailable, nil
	}

	if gerr := forms.CheckSubmittable(&form, identity, time.Now()); gerr != nil {
		return nil, gerr, nil
	}

	answers, fieldErrs := validation.Validate(form.Fields, rawValues)
	if len(fieldErrs) > 0 {
		return nil, nil, fieldErrs
	}

	attachFileRefs(ctx, answers)

	if gerr := forms.ReserveResponseSlot(ctx, formID); gerr != nil {
		return nil, gerr, nil
	}

	response := &models.Response{
		FormID:    formID,
		Answers:   answers,
		Meta:      meta,
		CreatedAt: time.Now(),
	}
	if identity.UserID != nil {
		response.SubmittedBy = identity.UserID
	} else {
		response.SubmittedByEmail = identity.Email
	}

	res, err := DB.ResponseCollection.InsertOne(ctx, response)
	if err != nil {
		// the slot was already claimed; give it back so the counter stays
		// consistent with the stored corpus
		if rerr := forms.ReleaseResponseSlot(ctx, formID); rerr != nil {
			log.Println("[responses] slot release failed after insert error:", rerr)
		}
		return nil, forms.ErrStorageUnavailable, nil
	}
	response.ID = res.InsertedID.(primitive.ObjectID)

	log.Printf("[responses] accepted form=%s response=%s answers=%d",
		formID.Hex(), response.ID.Hex(), len(response.Answers))

	analytics.Invalidate(ctx, formID)
	enqueueAnalyticsRefresh(formID)

	return &SubmitResult{ResponseID: response.ID, Answers: answers}, nil, nil
}

// attachFileRefs resolves upload tokens on file-type answers into stored
// metadata snapshots.
func attachFileRefs(ctx context.Context, answers []models.Answer) {
	for i := range answers {
		if answers[i].FieldType != fieldtypes.File {
			continue
		}
		if token, ok := answers[i].Value.(string); ok && token != "" {
			answers[i].Files = []models.FileRef{uploads.ResolveFileRef(ctx, token)}
		}
	}
}

func enqueueAnalyticsRefresh(formID primitive.ObjectID) {
	if DB.AsynqClient == nil {
		return
	}
	task, err := jobs.NewRefreshAnalyticsTask(formID.Hex())
	if err != nil {
		log.Println("[responses] build refresh task failed:", err)
		return
	}
	if _, err := DB.AsynqClient.Enqueue(task); err != nil {
		log.Println("[responses] enqueue refresh task failed:", err)
	}
}

// GetResponsesByForm lists stored responses for a form, newest first.
func GetResponsesByForm(ctx context.Context, formID primitive.ObjectID, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{"formId": formID}

	total, err := DB.ResponseCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := DB.ResponseCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Response
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(list, total, params), nil
}

// GetResponseByID loads a single stored response.
func GetResponseByID(ctx context.Context, id primitive.ObjectID) (*models.Response, error) {
	var response models.Response
	err := DB.ResponseCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&response)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return &response, nil
}

// DeleteResponse removes a stored response and decrements the form's
// response counter so quota accounting stays consistent.
func DeleteResponse(ctx context.Context, id primitive.ObjectID) error {
	response, err := GetResponseByID(ctx, id)
	if err != nil {
		return err
	}

	res, err := DB.ResponseCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrResponseNotFound
	}

	if err := forms.ReleaseResponseSlot(ctx, response.FormID); err != nil {
		log.Println("[responses] counter decrement failed on delete:", err)
	}
	analytics.Invalidate(ctx, response.FormID)
	enqueueAnalyticsRefresh(response.FormID)
	return nil
}
