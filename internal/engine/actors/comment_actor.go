package actors

import (
	stdctx "context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"blogspace/internal/database"
	"blogspace/internal/models"
	"blogspace/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for CommentActor
type (
	CreateCommentMsg struct {
		Content  string     `json:"content"`
		AuthorID uuid.UUID  `json:"authorId"`
		PostID   uuid.UUID  `json:"postId"`
		ParentID *uuid.UUID `json:"parentId,omitempty"` // Optional, for replies
	}

	DeleteCommentMsg struct {
		CommentID uuid.UUID `json:"commentId"`
		AuthorID  uuid.UUID `json:"authorId"`
	}

	GetCommentsForPostMsg struct {
		PostID uuid.UUID `json:"postId"`
	}

	ToggleCommentLikeMsg struct {
		CommentID uuid.UUID `json:"commentId"`
		UserID    uuid.UUID `json:"userId"`
	}
)

// CommentFeed receives created comments for live delivery to post watchers.
type CommentFeed interface {
	BroadcastComment(postID uuid.UUID, payload []byte)
}

// CommentActor manages comment operations
type CommentActor struct {
	store     database.Store
	metrics   *utils.MetricsCollector
	feed      CommentFeed
	userCache map[uuid.UUID]models.AuthorProfile
}

func NewCommentActor(store database.Store, metrics *utils.MetricsCollector, feed CommentFeed) actor.Actor {
	return &CommentActor{
		store:     store,
		metrics:   metrics,
		feed:      feed,
		userCache: make(map[uuid.UUID]models.AuthorProfile),
	}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CommentActor started with PID: %v", context.Self())

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	case *DeleteCommentMsg:
		a.handleDeleteComment(context, msg)

	case *GetCommentsForPostMsg:
		a.handleGetPostComments(context, msg)

	case *ToggleCommentLikeMsg:
		a.handleToggleLike(context, msg)

	default:
		log.Printf("CommentActor: Unknown message type %T", msg)
	}
}

// Helper function to get an author's public profile, using cache first
func (a *CommentActor) getProfile(ctx stdctx.Context, userID uuid.UUID) models.AuthorProfile {
	if profile, ok := a.userCache[userID]; ok {
		return profile
	}

	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		log.Printf("Error fetching user %s for profile: %v", userID, err)
		return models.AuthorProfile{ID: userID, Name: "[unknown]"}
	}

	profile := user.Profile()
	a.userCache[userID] = profile
	return profile
}

func (a *CommentActor) commentView(ctx stdctx.Context, comment *models.Comment) *models.CommentView {
	return &models.CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    a.getProfile(ctx, comment.AuthorID),
		PostID:    comment.PostID,
		ParentID:  comment.ParentID,
		Likes:     comment.LikeCount(),
		CreatedAt: comment.CreatedAt,
	}
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		context.Respond(utils.NewValidationError(utils.FieldError{
			Field:   "content",
			Message: "Comment content is required",
		}))
		return
	}

	// The target post must exist.
	if _, err := a.store.GetPost(ctx, msg.PostID); err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Post not found", nil))
		} else {
			log.Printf("Error fetching post %s for comment: %v", msg.PostID, err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch post", err))
		}
		return
	}

	// A reply's parent must exist, belong to the same post, and itself be a
	// top-level comment; threads are exactly one level deep.
	if msg.ParentID != nil {
		parent, err := a.store.GetComment(ctx, *msg.ParentID)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrNotFound) {
				context.Respond(utils.NewAppError(utils.ErrNotFound, "Parent comment not found", nil))
			} else {
				context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch parent comment", err))
			}
			return
		}

		if parent.PostID != msg.PostID {
			context.Respond(utils.NewValidationError(utils.FieldError{
				Field:   "parentComment",
				Message: "Parent comment belongs to a different post",
			}))
			return
		}
		if parent.ParentID != nil {
			context.Respond(utils.NewValidationError(utils.FieldError{
				Field:   "parentComment",
				Message: "Replies cannot be nested more than one level",
			}))
			return
		}
	}

	newComment := &models.Comment{
		ID:        uuid.New(),
		Content:   content,
		AuthorID:  msg.AuthorID,
		PostID:    msg.PostID,
		ParentID:  msg.ParentID,
		Likes:     make([]uuid.UUID, 0),
		CreatedAt: time.Now(),
	}

	if err := a.store.SaveComment(ctx, newComment); err != nil {
		log.Printf("Error saving comment to database: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save comment", err))
		return
	}

	view := a.commentView(ctx, newComment)
	a.publishToFeed(view)

	log.Printf("Created comment %s on post %s", newComment.ID, newComment.PostID)
	a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
	context.Respond(view)
}

func (a *CommentActor) publishToFeed(view *models.CommentView) {
	if a.feed == nil {
		return
	}
	payload, err := json.Marshal(view)
	if err != nil {
		log.Printf("Error encoding comment %s for feed: %v", view.ID, err)
		return
	}
	a.feed.BroadcastComment(view.PostID, payload)
}

func (a *CommentActor) handleDeleteComment(context actor.Context, msg *DeleteCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Comment not found", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch comment for deletion", err))
		return
	}

	if comment.AuthorID != msg.AuthorID {
		log.Printf("User %s not authorized to delete comment %s (author is %s)", msg.AuthorID, msg.CommentID, comment.AuthorID)
		context.Respond(utils.NewForbiddenError("only the comment's author may delete it"))
		return
	}

	// Removes the comment and its direct replies together; see
	// Store.DeleteCommentTree.
	if err := a.store.DeleteCommentTree(ctx, msg.CommentID); err != nil {
		log.Printf("Error deleting comment %s: %v", msg.CommentID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to delete comment", err))
		return
	}

	a.metrics.AddOperationLatency("delete_comment", time.Since(startTime))
	context.Respond(&models.StatusResponse{Message: "Comment deleted successfully"})
}

// handleGetPostComments builds the two-level thread view: top-level comments
// newest first, each carrying its direct replies oldest first. One query per
// top-level comment for replies; fine at this scale.
func (a *CommentActor) handleGetPostComments(context actor.Context, msg *GetCommentsForPostMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	topLevel, err := a.store.GetTopLevelComments(ctx, msg.PostID)
	if err != nil {
		log.Printf("Error fetching comments for post %s: %v", msg.PostID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch comments", err))
		return
	}

	views := make([]*models.CommentView, 0, len(topLevel))
	for _, comment := range topLevel {
		view := a.commentView(ctx, comment)
		view.Replies = make([]*models.CommentView, 0)

		replies, err := a.store.GetReplies(ctx, comment.ID)
		if err != nil {
			log.Printf("Error fetching replies for comment %s: %v", comment.ID, err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch replies", err))
			return
		}
		for _, reply := range replies {
			view.Replies = append(view.Replies, a.commentView(ctx, reply))
		}

		views = append(views, view)
	}

	a.metrics.AddOperationLatency("list_comments", time.Since(startTime))
	context.Respond(views)
}

func (a *CommentActor) handleToggleLike(context actor.Context, msg *ToggleCommentLikeMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	result, err := a.store.ToggleCommentLike(ctx, msg.CommentID, msg.UserID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Comment not found", nil))
			return
		}
		log.Printf("Error toggling like on comment %s by user %s: %v", msg.CommentID, msg.UserID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to toggle like", err))
		return
	}

	a.metrics.AddOperationLatency("toggle_comment_like", time.Since(startTime))
	context.Respond(result)
}
