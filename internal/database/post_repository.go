package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"blogspace/internal/models"
	"blogspace/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostDocument represents post data in MongoDB
type PostDocument struct {
	ID            string    `bson:"_id"`
	Title         string    `bson:"title"`
	Content       string    `bson:"content"`
	Excerpt       string    `bson:"excerpt,omitempty"`
	AuthorID      string    `bson:"authorId"`
	Categories    []string  `bson:"categories"`
	Tags          []string  `bson:"tags"`
	Status        string    `bson:"status"`
	FeaturedImage string    `bson:"featuredImage,omitempty"`
	Views         int       `bson:"views"`
	Likes         []string  `bson:"likes"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

// SavePost creates or updates a post in MongoDB
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) error {
	doc := PostDocument{
		ID:            post.ID.String(),
		Title:         post.Title,
		Content:       post.Content,
		Excerpt:       post.Excerpt,
		AuthorID:      post.AuthorID.String(),
		Categories:    post.Categories,
		Tags:          post.Tags,
		Status:        post.Status,
		FeaturedImage: post.FeaturedImage,
		Views:         post.Views,
		Likes:         idListToStrings(post.Likes),
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	if _, err := m.Posts.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Printf("Error saving post %s: %v", post.ID.String(), err)
		return fmt.Errorf("failed to save post: %v", err)
	}

	return nil
}

// GetPost retrieves a post by ID
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %v", err)
	}

	return convertPostDocumentToModel(&doc)
}

// IncrementPostViews bumps the view counter atomically and returns the
// updated post.
func (m *MongoDB) IncrementPostViews(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := m.Posts.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$inc": bson.M{"views": 1}},
		after,
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment post views: %v", err)
	}

	return convertPostDocumentToModel(&doc)
}

// GetRecentPosts retrieves the most recent published posts, newest first.
func (m *MongoDB) GetRecentPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.Posts.Find(ctx, bson.M{"status": models.PostStatusPublished}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent posts: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode post: %v", err)
		}

		post, err := convertPostDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// CountPosts returns the number of published posts.
func (m *MongoDB) CountPosts(ctx context.Context) (int64, error) {
	count, err := m.Posts.CountDocuments(ctx, bson.M{"status": models.PostStatusPublished})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %v", err)
	}
	return count, nil
}

// DeletePost removes a post document.
func (m *MongoDB) DeletePost(ctx context.Context, id uuid.UUID) error {
	result, err := m.Posts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete post: %v", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	return nil
}

// TogglePostLike flips the user's membership in the post's like-set.
func (m *MongoDB) TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (*models.LikeResult, error) {
	result, err := toggleLike(ctx, m.Posts, postID, userID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	return result, nil
}

func convertPostDocumentToModel(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %v", err)
	}

	likes, err := parseIDList(doc.Likes)
	if err != nil {
		return nil, err
	}

	return &models.Post{
		ID:            id,
		Title:         doc.Title,
		Content:       doc.Content,
		Excerpt:       doc.Excerpt,
		AuthorID:      authorID,
		Categories:    doc.Categories,
		Tags:          doc.Tags,
		Status:        doc.Status,
		FeaturedImage: doc.FeaturedImage,
		Views:         doc.Views,
		Likes:         likes,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

// EnsurePostIndexes creates required indexes for the posts collection
func (m *MongoDB) EnsurePostIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "authorId", Value: 1}},
		},
	}

	_, err := m.Posts.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %v", err)
	}

	return nil
}
