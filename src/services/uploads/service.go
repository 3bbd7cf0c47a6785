// Package uploads issues opaque upload tokens and keeps the file metadata
// behind them. File content lives with the external upload storage; the
// rest of the system only ever sees tokens and metadata snapshots.
package uploads

import (
	DB "Backend-FormCraft/src/database"
	"context"
	"errors"
	"time"

	"Backend-FormCraft/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrTokenNotFound = errors.New("upload token not found")

// RegisterUpload stores the metadata for an uploaded file and returns the
// record with a freshly issued token.
func RegisterUpload(ctx context.Context, upload *models.Upload) (*models.Upload, error) {
	upload.Token = uuid.NewString()
	upload.CreatedAt = time.Now()

	res, err := DB.UploadCollection.InsertOne(ctx, upload)
	if err != nil {
		return nil, err
	}
	upload.ID = res.InsertedID.(primitive.ObjectID)
	return upload, nil
}

// GetByToken resolves an upload token to its stored metadata.
func GetByToken(ctx context.Context, token string) (*models.Upload, error) {
	var upload models.Upload
	err := DB.UploadCollection.FindOne(ctx, bson.M{"token": token}).Decode(&upload)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &upload, nil
}

// ResolveFileRef builds the snapshot stored on a file-type answer. Unknown
// tokens still produce a bare reference: the token was accepted as opaque
// input and metadata may arrive later.
func ResolveFileRef(ctx context.Context, token string) models.FileRef {
	upload, err := GetByToken(ctx, token)
	if err != nil {
		return models.FileRef{Token: token}
	}
	return models.FileRef{
		Token:        upload.Token,
		Filename:     upload.Filename,
		OriginalName: upload.OriginalName,
		MimeType:     upload.MimeType,
		Size:         upload.Size,
		URL:          upload.URL,
	}
}
