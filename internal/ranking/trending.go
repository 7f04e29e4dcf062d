// Package ranking derives the "trending" ordering over posts. The
// computation is pure; nothing here touches the store and the ranking is
// recomputed on every request.
package ranking

import (
	"sort"

	"blogspace/internal/models"
)

// LikeWeight is how many views a single like is worth in the trending score.
const LikeWeight = 10

// Score returns a post's engagement score: views + 10 per like.
func Score(post *models.Post) int {
	return post.Views + LikeWeight*post.LikeCount()
}

// Trending returns the top k posts by score, highest first. The sort is
// stable, so posts with equal scores keep their fetch order. The input slice
// is not modified.
func Trending(posts []*models.Post, k int) []*models.Post {
	ranked := make([]*models.Post, len(posts))
	copy(ranked, posts)

	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})

	return clamp(ranked, k)
}

// Recent returns the first k posts of the fetch order, which callers supply
// newest first.
func Recent(posts []*models.Post, k int) []*models.Post {
	recent := make([]*models.Post, len(posts))
	copy(recent, posts)
	return clamp(recent, k)
}

func clamp(posts []*models.Post, k int) []*models.Post {
	if k > 0 && len(posts) > k {
		return posts[:k]
	}
	return posts
}
