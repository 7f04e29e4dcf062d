package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"blogspace/internal/engine/actors"
	"blogspace/internal/models"
	"blogspace/internal/utils"

	"github.com/google/uuid"
)

// LoginResponse pairs the issued token with the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// HandleRegister handles new user registration
func (s *Server) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Avatar   string `json:"avatar"`
			Bio      string `json:"bio"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.RegisterUserMsg{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Avatar:   req.Avatar,
			Bio:      req.Bio,
		})
		if err != nil {
			log.Printf("Error registering user: %v", err)
			http.Error(w, "Failed to register user", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusCreated)
	}
}

// HandleLogin checks credentials and issues a JWT on success.
func (s *Server) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.LoginMsg{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			log.Printf("Error processing login: %v", err)
			http.Error(w, "Failed to process login", http.StatusInternalServerError)
			return
		}

		user, ok := result.(*models.User)
		if !ok {
			s.respond(w, result, http.StatusOK)
			return
		}

		token, err := s.Auth.GenerateToken(user.ID)
		if err != nil {
			log.Printf("Error generating token for user %s: %v", user.ID, err)
			s.respond(w, utils.NewAppError(utils.ErrDatabase, "Failed to process login", err), http.StatusOK)
			return
		}

		s.respond(w, &LoginResponse{Token: token, User: user}, http.StatusOK)
	}
}

// HandleGetUser returns a user's public profile.
func (s *Server) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid user ID format", http.StatusBadRequest)
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.GetUserProfileMsg{UserID: userID})
		if err != nil {
			log.Printf("Error fetching user %s: %v", userID, err)
			http.Error(w, "Failed to get user", http.StatusInternalServerError)
			return
		}

		s.respond(w, result, http.StatusOK)
	}
}
