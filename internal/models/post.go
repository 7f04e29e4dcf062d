package models

import (
	"time"

	"github.com/google/uuid"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type Post struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Excerpt       string      `json:"excerpt,omitempty"`
	AuthorID      uuid.UUID   `json:"authorId"`
	Categories    []string    `json:"categories"`
	Tags          []string    `json:"tags"`
	Status        string      `json:"status"`
	FeaturedImage string      `json:"featuredImage,omitempty"`
	Views         int         `json:"views"`
	Likes         []uuid.UUID `json:"likes"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// LikeCount returns the cardinality of the post's like-set.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// PostView is a post annotated with its author's public profile.
type PostView struct {
	*Post
	Author AuthorProfile `json:"author"`
}

// PostList is the payload for post listings.
type PostList struct {
	Posts []*PostView `json:"posts"`
	Total int64       `json:"total"`
}

// TrendingView pairs the top posts by engagement with the most recent ones.
// Both are computed over the same fetch, independently.
type TrendingView struct {
	Trending []*PostView `json:"trending"`
	Recent   []*PostView `json:"recent"`
}
