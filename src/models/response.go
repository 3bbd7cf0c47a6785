package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response is one submitter's validated answer set for a form.
// SubmittedBy is set for authenticated submissions, SubmittedByEmail for
// anonymous ones; both may be empty when the form allows fully anonymous
// submissions.
type Response struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	FormID           primitive.ObjectID  `bson:"formId" json:"formId"`
	SubmittedBy      *primitive.ObjectID `bson:"submittedBy,omitempty" json:"submittedBy,omitempty"`
	SubmittedByEmail string              `bson:"submittedByEmail,omitempty" json:"submittedByEmail,omitempty"`
	Answers          []Answer            `bson:"answers,omitempty" json:"answers"`
	Meta             SubmissionMeta      `bson:"meta,omitempty" json:"meta"`
	CreatedAt        time.Time           `bson:"createdAt,omitempty" json:"createdAt"`
}

// Answer is a normalized, validated value for one field. Label and Type are
// snapshots taken at submission time so later schema edits never change how
// a stored answer is interpreted.
type Answer struct {
	FieldName  string    `bson:"fieldName" json:"fieldName"`
	FieldLabel string    `bson:"fieldLabel" json:"fieldLabel"`
	FieldType  string    `bson:"fieldType" json:"fieldType"`
	Value      any       `bson:"value" json:"value"`
	Files      []FileRef `bson:"files,omitempty" json:"files,omitempty"`
}

// FileRef is the stored metadata for an uploaded file. The upload itself is
// handled by the upload service; responses only keep the reference.
type FileRef struct {
	Token        string `bson:"token" json:"token"`
	Filename     string `bson:"filename,omitempty" json:"filename,omitempty"`
	OriginalName string `bson:"originalName,omitempty" json:"originalName,omitempty"`
	MimeType     string `bson:"mimeType,omitempty" json:"mimeType,omitempty"`
	Size         int64  `bson:"size,omitempty" json:"size,omitempty"`
	URL          string `bson:"url,omitempty" json:"url,omitempty"`
}

type SubmissionMeta struct {
	IPAddress       string `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent       string `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	DurationSeconds int    `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
}

// SubmitterIdentity is the resolved identity of a submission request, as
// provided by the auth middleware. A zero value means anonymous.
type SubmitterIdentity struct {
	UserID *primitive.ObjectID
	Email  string
}

func (s SubmitterIdentity) Anonymous() bool {
	return s.UserID == nil
}
