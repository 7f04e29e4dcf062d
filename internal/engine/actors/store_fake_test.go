package actors

import (
	"context"
	"sort"
	"sync"

	"blogspace/internal/models"
	"blogspace/internal/utils"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for actor tests. It mirrors the error
// behavior of the Mongo-backed store: user lookups return USER_NOT_FOUND,
// everything else returns NOT_FOUND.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	posts    map[uuid.UUID]*models.Post
	comments map[uuid.UUID]*models.Comment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*models.User),
		posts:    make(map[uuid.UUID]*models.Post),
		comments: make(map[uuid.UUID]*models.Comment),
	}
}

func (f *fakeStore) Close(ctx context.Context) error { return nil }

func (f *fakeStore) SaveUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, utils.NewUserNotFoundError(id.String())
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewUserNotFoundError(email)
}

func (f *fakeStore) SavePost(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakeStore) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	copied := *post
	return &copied, nil
}

func (f *fakeStore) IncrementPostViews(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	post.Views++
	copied := *post
	return &copied, nil
}

func (f *fakeStore) GetRecentPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	published := make([]*models.Post, 0, len(f.posts))
	for _, post := range f.posts {
		if post.Status == models.PostStatusPublished {
			copied := *post
			published = append(published, &copied)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})
	if len(published) > limit {
		published = published[:limit]
	}
	return published, nil
}

func (f *fakeStore) CountPosts(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, post := range f.posts {
		if post.Status == models.PostStatusPublished {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) TogglePostLike(ctx context.Context, postID, userID uuid.UUID) (*models.LikeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Post not found", nil)
	}
	post.Likes, _ = toggleInSet(post.Likes, userID)
	return &models.LikeResult{Likes: len(post.Likes), IsLiked: containsID(post.Likes, userID)}, nil
}

func (f *fakeStore) SaveComment(ctx context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeStore) GetTopLevelComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]*models.Comment, 0)
	for _, comment := range f.comments {
		if comment.PostID == postID && comment.ParentID == nil {
			copied := *comment
			matched = append(matched, &copied)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeStore) GetReplies(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]*models.Comment, 0)
	for _, comment := range f.comments {
		if comment.ParentID != nil && *comment.ParentID == parentID {
			copied := *comment
			matched = append(matched, &copied)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeStore) DeleteCommentTree(ctx context.Context, commentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[commentID]; !ok {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	delete(f.comments, commentID)
	for id, comment := range f.comments {
		if comment.ParentID != nil && *comment.ParentID == commentID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeStore) DeletePostComments(ctx context.Context, postID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, comment := range f.comments {
		if comment.PostID == postID {
			delete(f.comments, id)
		}
	}
	return nil
}

func (f *fakeStore) ToggleCommentLike(ctx context.Context, commentID, userID uuid.UUID) (*models.LikeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[commentID]
	if !ok {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	comment.Likes, _ = toggleInSet(comment.Likes, userID)
	return &models.LikeResult{Likes: len(comment.Likes), IsLiked: containsID(comment.Likes, userID)}, nil
}

func toggleInSet(set []uuid.UUID, id uuid.UUID) ([]uuid.UUID, bool) {
	for i, existing := range set {
		if existing == id {
			return append(set[:i], set[i+1:]...), false
		}
	}
	return append(set, id), true
}

func containsID(set []uuid.UUID, id uuid.UUID) bool {
	for _, existing := range set {
		if existing == id {
			return true
		}
	}
	return false
}

// recordingFeed captures broadcast payloads for assertions.
type recordingFeed struct {
	mu     sync.Mutex
	events []uuid.UUID
}

func (r *recordingFeed) BroadcastComment(postID uuid.UUID, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, postID)
}

func (r *recordingFeed) eventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recordingFeed) lastPostID() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return uuid.Nil
	}
	return r.events[len(r.events)-1]
}
