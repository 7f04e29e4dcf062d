package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"blogspace/internal/engine/actors"
	"blogspace/internal/middleware"

	"github.com/google/uuid"
)

type postRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Categories    []string `json:"categories"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status"`
	FeaturedImage string   `json:"featuredImage"`
}

// HandleCreatePost creates a post authored by the authenticated user.
func (s *Server) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetPostActor(), &actors.CreatePostMsg{
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			AuthorID:      authorID,
			Categories:    req.Categories,
			Tags:          req.Tags,
			Status:        req.Status,
			FeaturedImage: req.FeaturedImage,
		})
		if err != nil {
			log.Printf("Error creating post: %v", err)
			http.Error(w, "Failed to create post", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusCreated)
	}
}

// HandleListPosts returns recent published posts, newest first.
func (s *Server) HandleListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		result, err := s.ask(s.Engine.GetPostActor(), &actors.ListPostsMsg{Limit: limit})
		if err != nil {
			log.Printf("Error listing posts: %v", err)
			http.Error(w, "Failed to list posts", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleGetTrending returns the engagement-ranked and newest-first sections
// for the home page.
func (s *Server) HandleGetTrending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetPostActor(), &actors.GetTrendingMsg{})
		if err != nil {
			log.Printf("Error fetching trending posts: %v", err)
			http.Error(w, "Failed to fetch trending posts", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleGetPost returns a single post and counts the view.
func (s *Server) HandleGetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(r.PathValue("postId"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetPostActor(), &actors.GetPostMsg{PostID: postID})
		if err != nil {
			log.Printf("Error fetching post %s: %v", postID, err)
			http.Error(w, "Failed to get post", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleUpdatePost updates a post owned by the authenticated user.
func (s *Server) HandleUpdatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		postID, err := uuid.Parse(r.PathValue("postId"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetPostActor(), &actors.UpdatePostMsg{
			PostID:        postID,
			AuthorID:      authorID,
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			Categories:    req.Categories,
			Tags:          req.Tags,
			Status:        req.Status,
			FeaturedImage: req.FeaturedImage,
		})
		if err != nil {
			log.Printf("Error updating post %s: %v", postID, err)
			http.Error(w, "Failed to update post", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleDeletePost deletes a post and its comments.
func (s *Server) HandleDeletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		postID, err := uuid.Parse(r.PathValue("postId"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetPostActor(), &actors.DeletePostMsg{
			PostID:   postID,
			AuthorID: authorID,
		})
		if err != nil {
			log.Printf("Error deleting post %s: %v", postID, err)
			http.Error(w, "Failed to delete post", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleTogglePostLike flips the authenticated user's like on a post.
func (s *Server) HandleTogglePostLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		postID, err := uuid.Parse(r.PathValue("postId"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetPostActor(), &actors.TogglePostLikeMsg{
			PostID: postID,
			UserID: userID,
		})
		if err != nil {
			log.Printf("Error toggling like on post %s: %v", postID, err)
			http.Error(w, "Failed to toggle like", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}
