package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"blogspace/internal/engine/actors"
	"blogspace/internal/middleware"

	"github.com/google/uuid"
)

// HandleCreateComment creates a comment or a one-level reply on a post.
func (s *Server) HandleCreateComment() http.HandlerFunc {
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

		var req struct {
			Content  string `json:"content"`
			ParentID string `json:"parentComment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var parentID *uuid.UUID
		if req.ParentID != "" {
			parsed, err := uuid.Parse(req.ParentID)
			if err != nil {
				http.Error(w, "Invalid parent comment ID format", http.StatusBadRequest)
				return
			}
			parentID = &parsed
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
			Content:  req.Content,
			AuthorID: authorID,
			PostID:   postID,
			ParentID: parentID,
		})
		if err != nil {
			log.Printf("Error creating comment on post %s: %v", postID, err)
			http.Error(w, "Failed to create comment", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusCreated)
	}
}

// HandleGetPostComments returns a post's comment thread: top-level comments
// newest first, replies nested under their parents oldest first.
func (s *Server) HandleGetPostComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(r.PathValue("postId"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.GetCommentsForPostMsg{PostID: postID})
		if err != nil {
			log.Printf("Error fetching comments for post %s: %v", postID, err)
			http.Error(w, "Failed to fetch comments", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleDeleteComment deletes a comment (and its replies) owned by the
// authenticated user.
func (s *Server) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		commentID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{
			CommentID: commentID,
			AuthorID:  authorID,
		})
		if err != nil {
			log.Printf("Error deleting comment %s: %v", commentID, err)
			http.Error(w, "Failed to delete comment", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}

// HandleToggleCommentLike flips the authenticated user's like on a comment.
func (s *Server) HandleToggleCommentLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		commentID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.ToggleCommentLikeMsg{
			CommentID: commentID,
			UserID:    userID,
		})
		if err != nil {
			log.Printf("Error toggling like on comment %s: %v", commentID, err)
			http.Error(w, "Failed to toggle like", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}
