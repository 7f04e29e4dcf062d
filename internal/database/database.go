// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"blogspace/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store defines the persistence operations the actors depend on.
type Store interface {
	// Connection
	Close(ctx context.Context) error

	// User methods
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Post methods
	SavePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	IncrementPostViews(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetRecentPosts(ctx context.Context, limit int) ([]*models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (*models.LikeResult, error)

	// Comment methods
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetTopLevelComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	GetReplies(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error)
	DeleteCommentTree(ctx context.Context, commentID uuid.UUID) error
	DeletePostComments(ctx context.Context, postID uuid.UUID) error
	ToggleCommentLike(ctx context.Context, commentID, userID uuid.UUID) (*models.LikeResult, error)
}

type MongoDB struct {
	Client   *mongo.Client
	Users    *mongo.Collection
	Posts    *mongo.Collection
	Comments *mongo.Collection
}

var _ Store = (*MongoDB)(nil)

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	db := client.Database(dbName)
	return &MongoDB{
		Client:   client,
		Users:    db.Collection("users"),
		Posts:    db.Collection("posts"),
		Comments: db.Collection("comments"),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// toggleLike flips a user's membership in a document's like-set with two
// conditional updates, so concurrent toggles from the same user can never
// produce duplicate entries. The first update adds the user only if absent;
// when it matches nothing, the user was either already present or the
// document does not exist, which the $pull pass distinguishes.
func toggleLike(ctx context.Context, coll *mongo.Collection, id, userID uuid.UUID) (*models.LikeResult, error) {
	var doc struct {
		Likes []string `bson:"likes"`
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String(), "likes": bson.M{"$ne": userID.String()}},
		bson.M{"$addToSet": bson.M{"likes": userID.String()}},
		after,
	).Decode(&doc)
	if err == nil {
		return &models.LikeResult{Likes: len(doc.Likes), IsLiked: true}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to toggle like: %v", err)
	}

	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$pull": bson.M{"likes": userID.String()}},
		after,
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil // caller translates to a not-found error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %v", err)
	}

	return &models.LikeResult{Likes: len(doc.Likes), IsLiked: false}, nil
}

// parseIDList converts stored like-set entries back to UUIDs.
func parseIDList(ids []string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, len(ids))
	for i, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid ID in list: %v", err)
		}
		parsed[i] = id
	}
	return parsed, nil
}

func idListToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
