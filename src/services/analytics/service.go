package analytics

import (
	DB "Backend-FormCraft/src/database"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"Backend-FormCraft/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrFormNotFound = errors.New("form not found")

const cacheTTL = 10 * time.Minute

// GetFormAnalytics returns the form's analytics, served from the Redis
// cache when warm. A miss triggers a full recompute which also re-warms the
// cache.
func GetFormAnalytics(ctx context.Context, formID primitive.ObjectID) (*models.FormAnalytics, error) {
	if cached := readCache(ctx, formID); cached != nil {
		return cached, nil
	}
	return Refresh(ctx, formID)
}

// Refresh recomputes analytics from the stored corpus and updates the
// cache. Used both on cache miss and by the background refresh task.
func Refresh(ctx context.Context, formID primitive.ObjectID) (*models.FormAnalytics, error) {
	var form models.Form
	err := DB.FormCollection.FindOne(ctx, bson.M{"_id": formID}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	cursor, err := DB.ResponseCollection.Find(ctx, bson.M{"formId": formID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []models.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}

	result := Aggregate(&form, responses)
	writeCache(ctx, formID, &result)
	return &result, nil
}

// Invalidate drops the cached analytics for a form. Called on every
// accepted submission and on response deletion.
func Invalidate(ctx context.Context, formID primitive.ObjectID) {
	if DB.RedisClient == nil {
		return
	}
	if err := DB.RedisClient.Del(ctx, cacheKey(formID)).Err(); err != nil {
		log.Println("[analytics] cache invalidate failed:", err)
	}
}

func cacheKey(formID primitive.ObjectID) string {
	return "analytics:" + formID.Hex()
}

func readCache(ctx context.Context, formID primitive.ObjectID) *models.FormAnalytics {
	if DB.RedisClient == nil {
		return nil
	}

	data, err := DB.RedisClient.Get(ctx, cacheKey(formID)).Bytes()
	if err != nil {
		return nil
	}

	var out models.FormAnalytics
	if err := json.Unmarshal(data, &out); err != nil {
		log.Println("[analytics] dropping unreadable cache entry:", err)
		_ = DB.RedisClient.Del(ctx, cacheKey(formID)).Err()
		return nil
	}
	return &out
}

func writeCache(ctx context.Context, formID primitive.ObjectID, result *models.FormAnalytics) {
	if DB.RedisClient == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := DB.RedisClient.Set(ctx, cacheKey(formID), data, cacheTTL).Err(); err != nil {
		log.Println("[analytics] cache write failed:", err)
	}
}
