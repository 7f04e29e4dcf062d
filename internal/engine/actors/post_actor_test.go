package actors

import (
	"context"
	"testing"
	"time"

	"blogspace/internal/models"
	"blogspace/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnPostActor(t *testing.T, store *fakeStore) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewPostActor(store, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props)
}

func seedPublishedPost(t *testing.T, store *fakeStore, authorID uuid.UUID, title string, views, likeCount int, createdAt time.Time) uuid.UUID {
	t.Helper()
	likes := make([]uuid.UUID, likeCount)
	for i := range likes {
		likes[i] = uuid.New()
	}
	post := &models.Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   "content of " + title,
		AuthorID:  authorID,
		Status:    models.PostStatusPublished,
		Views:     views,
		Likes:     likes,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, store.SavePost(context.Background(), post))
	return post.ID
}

func TestPostActorCreateDefaultsToPublished(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")

	result := ask(t, system, pid, &CreatePostMsg{
		Title:    "First post",
		Content:  "Some content",
		AuthorID: authorID,
	})
	view, ok := result.(*models.PostView)
	require.True(t, ok, "expected *models.PostView, got %T: %v", result, result)
	assert.Equal(t, "First post", view.Title)
	assert.Equal(t, models.PostStatusPublished, view.Status)
	assert.Equal(t, "alice", view.Author.Name)
	assert.Equal(t, 0, view.Views)
	assert.NotNil(t, view.Categories)
	assert.NotNil(t, view.Tags)
}

func TestPostActorCreateValidatesFields(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")

	result := ask(t, system, pid, &CreatePostMsg{
		Title:    "  ",
		Content:  "",
		AuthorID: authorID,
		Status:   "archived",
	})
	verr, ok := result.(*utils.ValidationError)
	require.True(t, ok, "expected *utils.ValidationError, got %T: %v", result, result)

	fields := make(map[string]bool)
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["content"])
	assert.True(t, fields["status"])
}

func TestPostActorGetCountsView(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	postID := seedPublishedPost(t, store, authorID, "viewed", 0, 0, time.Now())

	first := ask(t, system, pid, &GetPostMsg{PostID: postID}).(*models.PostView)
	assert.Equal(t, 1, first.Views)

	second := ask(t, system, pid, &GetPostMsg{PostID: postID}).(*models.PostView)
	assert.Equal(t, 2, second.Views)
}

func TestPostActorGetMissingPost(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	result := ask(t, system, pid, &GetPostMsg{PostID: uuid.New()})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T: %v", result, result)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestPostActorListReturnsNewestFirst(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	base := time.Now()
	seedPublishedPost(t, store, authorID, "oldest", 0, 0, base.Add(-2*time.Hour))
	seedPublishedPost(t, store, authorID, "middle", 0, 0, base.Add(-time.Hour))
	seedPublishedPost(t, store, authorID, "newest", 0, 0, base)

	result := ask(t, system, pid, &ListPostsMsg{}).(*models.PostList)
	require.Len(t, result.Posts, 3)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, "newest", result.Posts[0].Title)
	assert.Equal(t, "middle", result.Posts[1].Title)
	assert.Equal(t, "oldest", result.Posts[2].Title)
}

func TestPostActorUpdateRequiresAuthor(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	intruderID := seedUser(t, store, "mallory")
	postID := seedPublishedPost(t, store, authorID, "original", 0, 0, time.Now())

	result := ask(t, system, pid, &UpdatePostMsg{
		PostID:   postID,
		AuthorID: intruderID,
		Title:    "hijacked",
		Content:  "changed",
	})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T: %v", result, result)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	post, err := store.GetPost(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, "original", post.Title)
}

func TestPostActorUpdateKeepsStatusWhenOmitted(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	postID := seedPublishedPost(t, store, authorID, "original", 0, 0, time.Now())

	result := ask(t, system, pid, &UpdatePostMsg{
		PostID:   postID,
		AuthorID: authorID,
		Title:    "renamed",
		Content:  "rewritten",
	})
	view, ok := result.(*models.PostView)
	require.True(t, ok, "expected *models.PostView, got %T: %v", result, result)
	assert.Equal(t, "renamed", view.Title)
	assert.Equal(t, models.PostStatusPublished, view.Status)
}

func TestPostActorDeleteRemovesComments(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	postID := seedPublishedPost(t, store, authorID, "doomed", 0, 0, time.Now())

	comment := &models.Comment{
		ID:        uuid.New(),
		Content:   "goes with the post",
		AuthorID:  authorID,
		PostID:    postID,
		Likes:     make([]uuid.UUID, 0),
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.SaveComment(context.Background(), comment))

	result := ask(t, system, pid, &DeletePostMsg{PostID: postID, AuthorID: authorID})
	status, ok := result.(*models.StatusResponse)
	require.True(t, ok, "expected *models.StatusResponse, got %T: %v", result, result)
	assert.Equal(t, "Post deleted successfully", status.Message)

	_, err := store.GetPost(context.Background(), postID)
	assert.Error(t, err)
	_, err = store.GetComment(context.Background(), comment.ID)
	assert.Error(t, err)
}

func TestPostActorDeleteRequiresAuthor(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	intruderID := seedUser(t, store, "mallory")
	postID := seedPublishedPost(t, store, authorID, "protected", 0, 0, time.Now())

	result := ask(t, system, pid, &DeletePostMsg{PostID: postID, AuthorID: intruderID})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T: %v", result, result)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
}

func TestPostActorToggleLikeIsSelfInverse(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	likerID := seedUser(t, store, "bob")
	postID := seedPublishedPost(t, store, authorID, "likeable", 0, 0, time.Now())

	liked := ask(t, system, pid, &TogglePostLikeMsg{PostID: postID, UserID: likerID}).(*models.LikeResult)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, 1, liked.Likes)

	unliked := ask(t, system, pid, &TogglePostLikeMsg{PostID: postID, UserID: likerID}).(*models.LikeResult)
	assert.False(t, unliked.IsLiked)
	assert.Equal(t, 0, unliked.Likes)
}

func TestPostActorTrendingRanksByEngagement(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	base := time.Now()

	// 150 views beats 20 views + 10 likes (score 120), which beats the rest.
	viewHeavy := seedPublishedPost(t, store, authorID, "view heavy", 150, 0, base.Add(-3*time.Hour))
	likeHeavy := seedPublishedPost(t, store, authorID, "like heavy", 20, 10, base.Add(-2*time.Hour))
	quiet := seedPublishedPost(t, store, authorID, "quiet", 5, 0, base.Add(-time.Hour))
	fresh := seedPublishedPost(t, store, authorID, "fresh", 0, 0, base)

	result := ask(t, system, pid, &GetTrendingMsg{}).(*models.TrendingView)

	require.Len(t, result.Trending, 4)
	assert.Equal(t, viewHeavy, result.Trending[0].ID)
	assert.Equal(t, likeHeavy, result.Trending[1].ID)

	// Recent section is untouched by engagement: plain newest-first.
	require.Len(t, result.Recent, 4)
	assert.Equal(t, fresh, result.Recent[0].ID)
	assert.Equal(t, quiet, result.Recent[1].ID)
}

func TestPostActorTrendingLimitsSections(t *testing.T) {
	store := newFakeStore()
	system, pid := spawnPostActor(t, store)

	authorID := seedUser(t, store, "alice")
	base := time.Now()
	for i := 0; i < 10; i++ {
		seedPublishedPost(t, store, authorID, "post", i, 0, base.Add(time.Duration(-i)*time.Minute))
	}

	result := ask(t, system, pid, &GetTrendingMsg{}).(*models.TrendingView)
	assert.Len(t, result.Trending, defaultTrendingLimit)
	assert.Len(t, result.Recent, defaultTrendingLimit)
}
