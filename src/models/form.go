package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Form status lifecycle: draft -> active -> closed -> archived
const (
	FormStatusDraft    = "draft"
	FormStatusActive   = "active"
	FormStatusClosed   = "closed"
	FormStatusArchived = "archived"
)

// --- Form ---
type Form struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Fields        []FormField        `bson:"fields,omitempty" json:"fields,omitempty"`
	Creator       primitive.ObjectID `bson:"creator" json:"creator"`
	Collaborators []Collaborator     `bson:"collaborators,omitempty" json:"collaborators,omitempty"`
	Settings      FormSettings       `bson:"settings" json:"settings"`
	Status        string             `bson:"status" json:"status"`
	ResponseCount int                `bson:"responseCount" json:"responseCount"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// --- FormField ---
// Name must be unique within a form. Order drives display and validation
// report sequence; ties are broken by position in the Fields slice.
type FormField struct {
	Type        string           `bson:"type" json:"type"`
	Label       string           `bson:"label" json:"label"`
	Name        string           `bson:"name" json:"name"`
	Placeholder string           `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required    bool             `bson:"required" json:"required"`
	Options     []FieldOption    `bson:"options,omitempty" json:"options,omitempty"`
	Validation  *FieldValidation `bson:"validation,omitempty" json:"validation,omitempty"`
	Order       int              `bson:"order" json:"order"`
}

type FieldOption struct {
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

// FieldValidation carries per-field constraints. Min/Max are numeric bounds
// for number fields and length bounds for text fields. Message overrides the
// generic error message when set.
type FieldValidation struct {
	Min     *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max     *float64 `bson:"max,omitempty" json:"max,omitempty"`
	Pattern string   `bson:"pattern,omitempty" json:"pattern,omitempty"`
	Message string   `bson:"message,omitempty" json:"message,omitempty"`
}

type FormSettings struct {
	IsPublic       bool       `bson:"isPublic" json:"isPublic"`
	AllowAnonymous bool       `bson:"allowAnonymous" json:"allowAnonymous"`
	CloseAt        *time.Time `bson:"closeAt,omitempty" json:"closeAt,omitempty"`
	MaxResponses   *int       `bson:"maxResponses,omitempty" json:"maxResponses,omitempty"`
}

const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

type Collaborator struct {
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	Role    string             `bson:"role" json:"role"`
	AddedAt time.Time          `bson:"addedAt" json:"addedAt"`
}

// AcceptingResponses reports whether the form accepts a submission at the
// given instant: status must be active, the deadline (if any) must not have
// passed and the response quota (if any) must not be reached.
func (f *Form) AcceptingResponses(now time.Time) bool {
	if f.Status != FormStatusActive {
		return false
	}
	if f.Settings.CloseAt != nil && !now.Before(*f.Settings.CloseAt) {
		return false
	}
	if f.Settings.MaxResponses != nil && f.ResponseCount >= *f.Settings.MaxResponses {
		return false
	}
	return true
}

// FieldByName returns the live field definition, or nil when the name is not
// part of the current schema (e.g. the field was renamed or removed).
func (f *Form) FieldByName(name string) *FormField {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// HasCollaborator reports whether userID is a collaborator with one of the
// given roles. An empty role list matches any role.
func (f *Form) HasCollaborator(userID primitive.ObjectID, roles ...string) bool {
	for _, c := range f.Collaborators {
		if c.UserID != userID {
			continue
		}
		if len(roles) == 0 {
			return true
		}
		for _, r := range roles {
			if c.Role == r {
				return true
			}
		}
	}
	return false
}
