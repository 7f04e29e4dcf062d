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

// CommentDocument represents comment data in MongoDB
type CommentDocument struct {
	ID        string    `bson:"_id"`
	Content   string    `bson:"content"`
	AuthorID  string    `bson:"authorId"`
	PostID    string    `bson:"postId"`
	ParentID  *string   `bson:"parentId,omitempty"`
	Likes     []string  `bson:"likes"`
	CreatedAt time.Time `bson:"createdAt"`
}

// SaveComment creates or updates a comment in MongoDB
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	doc := CommentDocument{
		ID:        comment.ID.String(),
		Content:   comment.Content,
		AuthorID:  comment.AuthorID.String(),
		PostID:    comment.PostID.String(),
		Likes:     idListToStrings(comment.Likes),
		CreatedAt: comment.CreatedAt,
	}

	// Handle optional ParentID
	if comment.ParentID != nil {
		parentIDStr := comment.ParentID.String()
		doc.ParentID = &parentIDStr
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	if _, err := m.Comments.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Printf("Error saving comment %s: %v", comment.ID.String(), err)
		return fmt.Errorf("failed to save comment: %v", err)
	}

	return nil
}

// GetComment retrieves a comment by ID
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument

	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %v", err)
	}

	return convertCommentDocumentToModel(&doc)
}

// GetTopLevelComments retrieves a post's comments with no parent, newest first.
func (m *MongoDB) GetTopLevelComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	filter := bson.M{"postId": postID.String(), "parentId": nil}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return m.findComments(ctx, filter, opts)
}

// GetReplies retrieves the direct replies of a comment, oldest first.
func (m *MongoDB) GetReplies(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error) {
	filter := bson.M{"parentId": parentID.String()}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	return m.findComments(ctx, filter, opts)
}

func (m *MongoDB) findComments(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Comment, error) {
	cursor, err := m.Comments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %v", err)
		}

		comment, err := convertCommentDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, nil
}

// DeleteCommentTree removes a comment and its direct replies in a single
// command, so a partial failure cannot leave replies pointing at a deleted
// parent. Replies of replies do not exist by construction.
func (m *MongoDB) DeleteCommentTree(ctx context.Context, commentID uuid.UUID) error {
	filter := bson.M{"$or": []bson.M{
		{"_id": commentID.String()},
		{"parentId": commentID.String()},
	}}

	result, err := m.Comments.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %v", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}

	log.Printf("Deleted comment %s and %d replies", commentID.String(), result.DeletedCount-1)
	return nil
}

// DeletePostComments removes every comment belonging to a post.
func (m *MongoDB) DeletePostComments(ctx context.Context, postID uuid.UUID) error {
	if _, err := m.Comments.DeleteMany(ctx, bson.M{"postId": postID.String()}); err != nil {
		return fmt.Errorf("failed to delete post comments: %v", err)
	}
	return nil
}

// ToggleCommentLike flips the user's membership in the comment's like-set.
func (m *MongoDB) ToggleCommentLike(ctx context.Context, commentID, userID uuid.UUID) (*models.LikeResult, error) {
	result, err := toggleLike(ctx, m.Comments, commentID, userID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	return result, nil
}

func convertCommentDocumentToModel(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %v", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %v", err)
	}

	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	var parentID *uuid.UUID
	if doc.ParentID != nil {
		parsed, err := uuid.Parse(*doc.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent ID: %v", err)
		}
		parentID = &parsed
	}

	likes, err := parseIDList(doc.Likes)
	if err != nil {
		return nil, err
	}

	return &models.Comment{
		ID:        id,
		Content:   doc.Content,
		AuthorID:  authorID,
		PostID:    postID,
		ParentID:  parentID,
		Likes:     likes,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// EnsureCommentIndexes creates required indexes for the comments collection
func (m *MongoDB) EnsureCommentIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "postId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "parentId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "authorId", Value: 1}},
		},
	}

	_, err := m.Comments.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create comment indexes: %v", err)
	}

	return nil
}
