package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	FormCollection     *mongo.Collection
	ResponseCollection *mongo.Collection
	UserCollection     *mongo.Collection
	UploadCollection   *mongo.Collection
)

const dbName = "FormCraftDB"

// ConnectMongoDB connects to MongoDB once and initializes the shared
// collection handles.
func ConnectMongoDB() error {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: no .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable not set")
	}

	once.Do(func() {
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			return
		}

		FormCollection = GetCollection(dbName, "forms")
		ResponseCollection = GetCollection(dbName, "responses")
		UserCollection = GetCollection(dbName, "users")
		UploadCollection = GetCollection(dbName, "uploads")

		log.Println("MongoDB connected")
	})

	return connectErr
}

// GetCollection returns a collection handle from the shared client.
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}
