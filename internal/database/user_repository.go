package database

import (
	"context"
	"fmt"
	"time"

	"blogspace/internal/models"
	"blogspace/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDocument represents user data in MongoDB
type UserDocument struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashedPassword"`
	Avatar         string    `bson:"avatar"`
	Bio            string    `bson:"bio,omitempty"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// SaveUser creates or updates a user in MongoDB
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	doc := UserDocument{
		ID:             user.ID.String(),
		Name:           user.Name,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		Avatar:         user.Avatar,
		Bio:            user.Bio,
		CreatedAt:      user.CreatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	if _, err := m.Users.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save user: %v", err)
	}

	return nil
}

// GetUser retrieves a user by ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewUserNotFoundError(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	return convertUserDocumentToModel(&doc)
}

// GetUserByEmail retrieves a user by email address
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewUserNotFoundError(email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %v", err)
	}

	return convertUserDocumentToModel(&doc)
}

func convertUserDocumentToModel(doc *UserDocument) (*models.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	return &models.User{
		ID:             id,
		Name:           doc.Name,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		Avatar:         doc.Avatar,
		Bio:            doc.Bio,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

// EnsureUserIndexes creates required indexes for the users collection
func (m *MongoDB) EnsureUserIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.Users.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	return nil
}
