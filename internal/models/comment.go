package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a remark on a post. ParentID is nil for top-level comments and
// set for replies; replies never have replies of their own.
type Comment struct {
	ID        uuid.UUID   `json:"id"`
	Content   string      `json:"content"`
	AuthorID  uuid.UUID   `json:"authorId"`
	PostID    uuid.UUID   `json:"postId"`
	ParentID  *uuid.UUID  `json:"parentId,omitempty"`
	Likes     []uuid.UUID `json:"likes"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (c *Comment) LikeCount() int {
	return len(c.Likes)
}

// CommentView is a comment annotated with its author's public profile. For
// top-level comments Replies holds the direct replies, oldest first. The
// replies key is always serialized; clients iterate it without checking.
type CommentView struct {
	ID        uuid.UUID      `json:"id"`
	Content   string         `json:"content"`
	Author    AuthorProfile  `json:"author"`
	PostID    uuid.UUID      `json:"postId"`
	ParentID  *uuid.UUID     `json:"parentId,omitempty"`
	Likes     int            `json:"likes"`
	CreatedAt time.Time      `json:"createdAt"`
	Replies   []*CommentView `json:"replies"`
}

// LikeResult reports the outcome of a like toggle: the resulting like count
// and whether the requester now likes the entity.
type LikeResult struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

// StatusResponse is a simple acknowledgment payload.
type StatusResponse struct {
	Message string `json:"message"`
}
