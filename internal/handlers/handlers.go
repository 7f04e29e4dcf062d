package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"blogspace/internal/engine"
	"blogspace/internal/middleware"
	"blogspace/internal/models"
	"blogspace/internal/utils"
	"blogspace/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Auth           *middleware.Auth
	Hub            *websocket.Hub
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	auth *middleware.Auth,
	hub *websocket.Hub,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Metrics:        metrics,
		Auth:           auth,
		Hub:            hub,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// HandleHealth handles health check requests
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requests, errors := s.Metrics.Counts()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"uptime":      s.Metrics.Uptime().String(),
			"requests":    requests,
			"errors":      errors,
			"server_time": time.Now(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError translates domain errors to the HTTP error envelope: field-level
// validation failures as {"errors": [...]}, everything else as {"message"}.
// Unexpected errors surface as a generic 500; the detail stays in the log.
func writeError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *utils.ValidationError:
		writeJSON(w, http.StatusBadRequest, e)
	case *utils.AppError:
		status := utils.AppErrorToHTTPStatus(e.Code)
		if status == http.StatusInternalServerError {
			log.Printf("Internal error: %v", e)
			writeJSON(w, status, models.StatusResponse{Message: "Server error"})
			return
		}
		writeJSON(w, status, models.StatusResponse{Message: e.Message})
	default:
		log.Printf("Unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.StatusResponse{Message: "Server error"})
	}
}

// respond sends an actor result, translating error values sent back by the
// actor into the error envelope.
func (s *Server) respond(w http.ResponseWriter, result interface{}, successStatus int) {
	s.Metrics.IncrementRequests()
	if err, ok := result.(error); ok {
		s.Metrics.IncrementErrors()
		writeError(w, err)
		return
	}
	writeJSON(w, successStatus, result)
}

// ask sends a message to an actor and waits for the reply.
func (s *Server) ask(pid *actor.PID, msg interface{}) (interface{}, error) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	return future.Result()
}
