package auth

import (
	DB "Backend-FormCraft/src/database"
	"context"
	"errors"
	"strings"
	"time"

	"Backend-FormCraft/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// RegisterUser creates a new user with a bcrypt-hashed password.
func RegisterUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	count, err := DB.UserCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hash)
	user.CreatedAt = time.Now()

	res, err := DB.UserCollection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	user.Password = ""
	return user, nil
}

// AuthenticateUser checks the credentials and returns the stored user.
func AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := DB.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	return &user, nil
}

// GetUserByID loads a user profile.
func GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := DB.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Password = ""
	return &user, nil
}
