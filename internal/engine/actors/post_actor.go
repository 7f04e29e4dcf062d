package actors

import (
	stdctx "context"
	"log"
	"strings"
	"time"

	"blogspace/internal/database"
	"blogspace/internal/models"
	"blogspace/internal/ranking"
	"blogspace/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for Post operations
type (
	CreatePostMsg struct {
		Title         string
		Content       string
		Excerpt       string
		AuthorID      uuid.UUID
		Categories    []string
		Tags          []string
		Status        string
		FeaturedImage string
	}

	GetPostMsg struct {
		PostID uuid.UUID
	}

	ListPostsMsg struct {
		Limit int
	}

	UpdatePostMsg struct {
		PostID        uuid.UUID
		AuthorID      uuid.UUID
		Title         string
		Content       string
		Excerpt       string
		Categories    []string
		Tags          []string
		Status        string
		FeaturedImage string
	}

	DeletePostMsg struct {
		PostID   uuid.UUID
		AuthorID uuid.UUID
	}

	TogglePostLikeMsg struct {
		PostID uuid.UUID
		UserID uuid.UUID
	}

	GetTrendingMsg struct {
		Limit int
	}
)

const (
	// How many recent posts the trending view is computed over.
	trendingFetchLimit = 20

	// Default number of posts in each trending/recent section.
	defaultTrendingLimit = 6

	defaultListLimit = 20
	maxListLimit     = 50
)

// PostActor handles post-related operations
type PostActor struct {
	store     database.Store
	metrics   *utils.MetricsCollector
	userCache map[uuid.UUID]models.AuthorProfile
}

func NewPostActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &PostActor{
		store:     store,
		metrics:   metrics,
		userCache: make(map[uuid.UUID]models.AuthorProfile),
	}
}

// Receive handles incoming messages
func (a *PostActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("PostActor started")

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)
	case *GetPostMsg:
		a.handleGetPost(context, msg)
	case *ListPostsMsg:
		a.handleListPosts(context, msg)
	case *UpdatePostMsg:
		a.handleUpdatePost(context, msg)
	case *DeletePostMsg:
		a.handleDeletePost(context, msg)
	case *TogglePostLikeMsg:
		a.handleToggleLike(context, msg)
	case *GetTrendingMsg:
		a.handleGetTrending(context, msg)
	default:
		log.Printf("PostActor: Unknown message type: %T", msg)
	}
}

func (a *PostActor) getProfile(ctx stdctx.Context, userID uuid.UUID) models.AuthorProfile {
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

func (a *PostActor) postView(ctx stdctx.Context, post *models.Post) *models.PostView {
	return &models.PostView{
		Post:   post,
		Author: a.getProfile(ctx, post.AuthorID),
	}
}

func (a *PostActor) postViews(ctx stdctx.Context, posts []*models.Post) []*models.PostView {
	views := make([]*models.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, a.postView(ctx, post))
	}
	return views
}

func validatePostFields(title, content, status string) *utils.ValidationError {
	var fields []utils.FieldError
	if strings.TrimSpace(title) == "" {
		fields = append(fields, utils.FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(content) == "" {
		fields = append(fields, utils.FieldError{Field: "content", Message: "Content is required"})
	}
	if status != models.PostStatusDraft && status != models.PostStatusPublished {
		fields = append(fields, utils.FieldError{Field: "status", Message: "Status must be draft or published"})
	}
	if len(fields) > 0 {
		return utils.NewValidationError(fields...)
	}
	return nil
}

func (a *PostActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	status := msg.Status
	if status == "" {
		status = models.PostStatusPublished
	}

	if verr := validatePostFields(msg.Title, msg.Content, status); verr != nil {
		context.Respond(verr)
		return
	}

	now := time.Now()
	newPost := &models.Post{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(msg.Title),
		Content:       msg.Content,
		Excerpt:       msg.Excerpt,
		AuthorID:      msg.AuthorID,
		Categories:    emptyIfNil(msg.Categories),
		Tags:          emptyIfNil(msg.Tags),
		Status:        status,
		FeaturedImage: msg.FeaturedImage,
		Views:         0,
		Likes:         make([]uuid.UUID, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	log.Printf("PostActor: Creating new post %s by author %s", newPost.ID, newPost.AuthorID)

	if err := a.store.SavePost(ctx, newPost); err != nil {
		log.Printf("Error saving post: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save post", err))
		return
	}

	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	context.Respond(a.postView(ctx, newPost))
}

// handleGetPost fetches a single post and counts the view.
func (a *PostActor) handleGetPost(context actor.Context, msg *GetPostMsg) {
	ctx := stdctx.Background()

	post, err := a.store.IncrementPostViews(ctx, msg.PostID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Post not found", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to get post", err))
		return
	}

	context.Respond(a.postView(ctx, post))
}

func (a *PostActor) handleListPosts(context actor.Context, msg *ListPostsMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	limit := msg.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	posts, err := a.store.GetRecentPosts(ctx, limit)
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to list posts", err))
		return
	}

	total, err := a.store.CountPosts(ctx)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to count posts", err))
		return
	}

	a.metrics.AddOperationLatency("list_posts", time.Since(startTime))
	context.Respond(&models.PostList{
		Posts: a.postViews(ctx, posts),
		Total: total,
	})
}

func (a *PostActor) handleUpdatePost(context actor.Context, msg *UpdatePostMsg) {
	ctx := stdctx.Background()

	post, err := a.store.GetPost(ctx, msg.PostID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Post not found", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch post", err))
		return
	}

	if post.AuthorID != msg.AuthorID {
		context.Respond(utils.NewForbiddenError("only the post's author may update it"))
		return
	}

	status := msg.Status
	if status == "" {
		status = post.Status
	}

	if verr := validatePostFields(msg.Title, msg.Content, status); verr != nil {
		context.Respond(verr)
		return
	}

	post.Title = strings.TrimSpace(msg.Title)
	post.Content = msg.Content
	post.Excerpt = msg.Excerpt
	post.Categories = emptyIfNil(msg.Categories)
	post.Tags = emptyIfNil(msg.Tags)
	post.Status = status
	post.FeaturedImage = msg.FeaturedImage
	post.UpdatedAt = time.Now()

	if err := a.store.SavePost(ctx, post); err != nil {
		log.Printf("Error updating post %s: %v", msg.PostID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update post", err))
		return
	}

	context.Respond(a.postView(ctx, post))
}

func (a *PostActor) handleDeletePost(context actor.Context, msg *DeletePostMsg) {
	ctx := stdctx.Background()

	post, err := a.store.GetPost(ctx, msg.PostID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Post not found", nil))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch post", err))
		return
	}

	if post.AuthorID != msg.AuthorID {
		context.Respond(utils.NewForbiddenError("only the post's author may delete it"))
		return
	}

	// The post's comments go with it.
	if err := a.store.DeletePostComments(ctx, msg.PostID); err != nil {
		log.Printf("Error deleting comments of post %s: %v", msg.PostID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to delete post comments", err))
		return
	}

	if err := a.store.DeletePost(ctx, msg.PostID); err != nil {
		log.Printf("Error deleting post %s: %v", msg.PostID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to delete post", err))
		return
	}

	context.Respond(&models.StatusResponse{Message: "Post deleted successfully"})
}

func (a *PostActor) handleToggleLike(context actor.Context, msg *TogglePostLikeMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	result, err := a.store.TogglePostLike(ctx, msg.PostID, msg.UserID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Post not found", nil))
			return
		}
		log.Printf("Error toggling like on post %s by user %s: %v", msg.PostID, msg.UserID, err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to toggle like", err))
		return
	}

	a.metrics.AddOperationLatency("toggle_post_like", time.Since(startTime))
	context.Respond(result)
}

// handleGetTrending ranks the most recent posts by engagement and pairs the
// result with the plain newest-first slice.
func (a *PostActor) handleGetTrending(context actor.Context, msg *GetTrendingMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	limit := msg.Limit
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	posts, err := a.store.GetRecentPosts(ctx, trendingFetchLimit)
	if err != nil {
		log.Printf("Error fetching posts for trending: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch posts", err))
		return
	}

	view := &models.TrendingView{
		Trending: a.postViews(ctx, ranking.Trending(posts, limit)),
		Recent:   a.postViews(ctx, ranking.Recent(posts, limit)),
	}

	a.metrics.AddOperationLatency("get_trending", time.Since(startTime))
	context.Respond(view)
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return make([]string, 0)
	}
	return list
}
