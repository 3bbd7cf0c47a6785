package forms

import (
	DB "Backend-FormCraft/src/database"
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"Backend-FormCraft/src/fieldtypes"
	"Backend-FormCraft/src/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var formValidate = validator.New()

var (
	ErrAccessDenied         = errors.New("access denied")
	ErrCollaboratorExists   = errors.New("user is already a collaborator")
	ErrCollaboratorNotFound = errors.New("collaborator not found")
)

// CreateFormRequest is the payload for creating or replacing a form
// definition.
type CreateFormRequest struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Fields      []models.FormField  `json:"fields" validate:"dive"`
	Settings    models.FormSettings `json:"settings"`
}

// CreateForm validates the field definitions and inserts a new draft form.
func CreateForm(ctx context.Context, creator primitive.ObjectID, req *CreateFormRequest) (*models.Form, error) {
	if err := formValidate.Struct(req); err != nil {
		return nil, err
	}
	if err := CheckFieldDefinitions(req.Fields); err != nil {
		return nil, err
	}

	now := time.Now()
	form := &models.Form{
		Title:       req.Title,
		Description: req.Description,
		Fields:      normalizeFieldOrder(req.Fields),
		Creator:     creator,
		Settings:    req.Settings,
		Status:      models.FormStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := DB.FormCollection.InsertOne(ctx, form)
	if err != nil {
		return nil, err
	}
	form.ID = res.InsertedID.(primitive.ObjectID)
	return form, nil
}

// CheckFieldDefinitions enforces the schema invariants: known field types,
// unique field names, options present on choice types and compilable regex
// patterns.
func CheckFieldDefinitions(fields []models.FormField) error {
	names := make(map[string]bool, len(fields))
	for i := range fields {
		f := &fields[i]

		if !fieldtypes.Known(f.Type) {
			return fmt.Errorf("unknown field type %q for field %q", f.Type, f.Name)
		}
		if names[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		names[f.Name] = true

		if fieldtypes.NeedsOptions(f.Type) && len(f.Options) == 0 {
			return fmt.Errorf("options are required for %s field %q", f.Type, f.Name)
		}
		if f.Validation != nil && f.Validation.Pattern != "" {
			if _, err := regexp.Compile(f.Validation.Pattern); err != nil {
				return fmt.Errorf("invalid pattern on field %q: %v", f.Name, err)
			}
		}
	}
	return nil
}

// normalizeFieldOrder fills in missing Order values from slice position so
// that validation and analytics reports keep a stable sequence.
func normalizeFieldOrder(fields []models.FormField) []models.FormField {
	for i := range fields {
		if fields[i].Order == 0 {
			fields[i].Order = i + 1
		}
	}
	return fields
}

// GetForms lists forms the user created or collaborates on, with pagination
// plus optional status filter and title/description search.
func GetForms(ctx context.Context, userID primitive.ObjectID, params models.PaginationParams, status string) (*models.PaginatedResponse, error) {
	filter := bson.M{"$or": []bson.M{
		{"creator": userID},
		{"collaborators.userId": userID},
	}}
	if status != "" {
		filter["status"] = status
	}
	if params.Search != "" {
		filter["$and"] = []bson.M{{"$or": []bson.M{
			{"title": bson.M{"$regex": params.Search, "$options": "i"}},
			{"description": bson.M{"$regex": params.Search, "$options": "i"}},
		}}}
	}

	total, err := DB.FormCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := DB.FormCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []models.Form
	if err = cursor.All(ctx, &forms); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(forms, total, params), nil
}

// GetFormByID loads a single form. Returns ErrFormNotFound when no document
// matches.
func GetFormByID(ctx context.Context, formID primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := DB.FormCollection.FindOne(ctx, bson.M{"_id": formID}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return &form, nil
}

// UpdateForm replaces title, description, fields and settings. Only the
// creator and editor/admin collaborators may update.
func UpdateForm(ctx context.Context, formID, userID primitive.ObjectID, req *CreateFormRequest) (*models.Form, error) {
	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.Creator != userID && !form.HasCollaborator(userID, models.RoleEditor, models.RoleAdmin) {
		return nil, ErrAccessDenied
	}

	if err := formValidate.Struct(req); err != nil {
		return nil, err
	}
	if err := CheckFieldDefinitions(req.Fields); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":       req.Title,
		"description": req.Description,
		"fields":      normalizeFieldOrder(req.Fields),
		"settings":    req.Settings,
		"updatedAt":   time.Now(),
	}}
	if _, err := DB.FormCollection.UpdateOne(ctx, bson.M{"_id": formID}, update); err != nil {
		return nil, err
	}

	if form.Status == models.FormStatusActive {
		rescheduleCloseTask(formID, req.Settings.CloseAt)
	}

	return GetFormByID(ctx, formID)
}

// DeleteForm removes a form and its stored responses. Creator only.
func DeleteForm(ctx context.Context, formID, userID primitive.ObjectID) error {
	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return err
	}
	if form.Creator != userID {
		return ErrAccessDenied
	}

	if _, err := DB.FormCollection.DeleteOne(ctx, bson.M{"_id": formID}); err != nil {
		return err
	}
	// orphaned responses are useless without their form
	if _, err := DB.ResponseCollection.DeleteMany(ctx, bson.M{"formId": formID}); err != nil {
		return err
	}
	cancelCloseTask(formID)
	return nil
}

// UpdateStatus moves a form through its lifecycle. Creator and admin
// collaborators only. Activating a form with a deadline schedules the
// background close task; any other transition cancels it.
func UpdateStatus(ctx context.Context, formID, userID primitive.ObjectID, status string) (*models.Form, error) {
	switch status {
	case models.FormStatusDraft, models.FormStatusActive, models.FormStatusClosed, models.FormStatusArchived:
	default:
		return nil, fmt.Errorf("invalid status %q", status)
	}

	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.Creator != userID && !form.HasCollaborator(userID, models.RoleAdmin) {
		return nil, ErrAccessDenied
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	if _, err := DB.FormCollection.UpdateOne(ctx, bson.M{"_id": formID}, update); err != nil {
		return nil, err
	}

	if status == models.FormStatusActive {
		rescheduleCloseTask(formID, form.Settings.CloseAt)
	} else {
		cancelCloseTask(formID)
	}

	return GetFormByID(ctx, formID)
}

// DuplicateForm copies a form as a private draft owned by the caller.
func DuplicateForm(ctx context.Context, formID, userID primitive.ObjectID) (*models.Form, error) {
	original, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	allowed := original.Creator == userID ||
		original.HasCollaborator(userID, models.RoleEditor, models.RoleAdmin) ||
		original.Settings.IsPublic
	if !allowed {
		return nil, ErrAccessDenied
	}

	now := time.Now()
	settings := original.Settings
	settings.IsPublic = false

	copyForm := &models.Form{
		Title:       original.Title + " (Copy)",
		Description: original.Description,
		Fields:      original.Fields,
		Creator:     userID,
		Settings:    settings,
		Status:      models.FormStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := DB.FormCollection.InsertOne(ctx, copyForm)
	if err != nil {
		return nil, err
	}
	copyForm.ID = res.InsertedID.(primitive.ObjectID)
	return copyForm, nil
}

// AddCollaborator adds a user with the given role. Creator and admin
// collaborators only.
func AddCollaborator(ctx context.Context, formID, userID, collabID primitive.ObjectID, role string) (*models.Form, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}

	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.Creator != userID && !form.HasCollaborator(userID, models.RoleAdmin) {
		return nil, ErrAccessDenied
	}
	if form.HasCollaborator(collabID) {
		return nil, ErrCollaboratorExists
	}

	update := bson.M{"$push": bson.M{"collaborators": models.Collaborator{
		UserID:  collabID,
		Role:    role,
		AddedAt: time.Now(),
	}}}
	if _, err := DB.FormCollection.UpdateOne(ctx, bson.M{"_id": formID}, update); err != nil {
		return nil, err
	}
	return GetFormByID(ctx, formID)
}

// UpdateCollaboratorRole changes a collaborator's role. Creator only.
func UpdateCollaboratorRole(ctx context.Context, formID, userID, collabID primitive.ObjectID, role string) (*models.Form, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}

	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.Creator != userID {
		return nil, ErrAccessDenied
	}
	if !form.HasCollaborator(collabID) {
		return nil, ErrCollaboratorNotFound
	}

	res, err := DB.FormCollection.UpdateOne(ctx,
		bson.M{"_id": formID, "collaborators.userId": collabID},
		bson.M{"$set": bson.M{"collaborators.$.role": role}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrCollaboratorNotFound
	}
	return GetFormByID(ctx, formID)
}

// RemoveCollaborator removes a collaborator. The creator may remove anyone;
// collaborators may remove themselves.
func RemoveCollaborator(ctx context.Context, formID, userID, collabID primitive.ObjectID) (*models.Form, error) {
	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.Creator != userID && userID != collabID {
		return nil, ErrAccessDenied
	}
	if !form.HasCollaborator(collabID) {
		return nil, ErrCollaboratorNotFound
	}

	update := bson.M{"$pull": bson.M{"collaborators": bson.M{"userId": collabID}}}
	if _, err := DB.FormCollection.UpdateOne(ctx, bson.M{"_id": formID}, update); err != nil {
		return nil, err
	}
	return GetFormByID(ctx, formID)
}

func checkRole(role string) error {
	switch role {
	case models.RoleViewer, models.RoleEditor, models.RoleAdmin:
		return nil
	}
	return fmt.Errorf("invalid role %q", role)
}

// CanViewResponses reports whether the user may read responses and
// analytics for the form: creator or any collaborator.
func CanViewResponses(form *models.Form, userID primitive.ObjectID) bool {
	return form.Creator == userID || form.HasCollaborator(userID)
}
