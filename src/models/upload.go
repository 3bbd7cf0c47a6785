package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload is the stored record behind an upload token. The binary content
// lives with the external upload storage; only the metadata is kept here.
type Upload struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Token        string              `bson:"token" json:"token"`
	Filename     string              `bson:"filename" json:"filename"`
	OriginalName string              `bson:"originalName" json:"originalName"`
	MimeType     string              `bson:"mimeType" json:"mimeType"`
	Size         int64               `bson:"size" json:"size"`
	URL          string              `bson:"url" json:"url"`
	UploadedBy   *primitive.ObjectID `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}
