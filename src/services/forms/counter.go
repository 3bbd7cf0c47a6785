package forms

import (
	DB "Backend-FormCraft/src/database"
	"context"

	"Backend-FormCraft/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReserveResponseSlot atomically increments the form's response counter,
// but only while the form is active and under its quota. Status and quota
// live inside the update filter, so two racing submissions can never both
// claim the last slot: the filter and $inc execute as one document
// operation on the server.
//
// A read-then-write here would be a correctness bug, not an optimization
// target.
func ReserveResponseSlot(ctx context.Context, formID primitive.ObjectID) *GateError {
	filter := bson.M{
		"_id":    formID,
		"status": models.FormStatusActive,
		"$expr": bson.M{"$or": bson.A{
			bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$settings.maxResponses", nil}}, nil}},
			bson.M{"$lt": bson.A{"$responseCount", "$settings.maxResponses"}},
		}},
	}

	res, err := DB.FormCollection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"responseCount": 1}})
	if err != nil {
		return ErrStorageUnavailable
	}
	if res.ModifiedCount == 1 {
		return nil
	}

	// the guarded update matched nothing; reload to report the precise
	// reason
	form, gerr := loadForReservationError(ctx, formID)
	if gerr != nil {
		return gerr
	}
	if form.Status != models.FormStatusActive {
		return ErrNotAccepting
	}
	if form.Settings.MaxResponses != nil && form.ResponseCount >= *form.Settings.MaxResponses {
		return ErrQuotaExceeded
	}
	return ErrNotAccepting
}

func loadForReservationError(ctx context.Context, formID primitive.ObjectID) (*models.Form, *GateError) {
	var form models.Form
	if err := DB.FormCollection.FindOne(ctx, bson.M{"_id": formID}).Decode(&form); err != nil {
		return nil, ErrFormNotFound
	}
	return &form, nil
}

// ReleaseResponseSlot undoes a reservation, used when persisting the
// response fails after the counter was already incremented, and when a
// stored response is deleted. The counter never goes below zero.
func ReleaseResponseSlot(ctx context.Context, formID primitive.ObjectID) error {
	filter := bson.M{"_id": formID, "responseCount": bson.M{"$gt": 0}}
	_, err := DB.FormCollection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"responseCount": -1}})
	return err
}
