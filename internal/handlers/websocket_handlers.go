package handlers

import (
	"log"
	"net/http"

	ws "blogspace/internal/websocket"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the frontend origin; CORS is enforced at
	// the HTTP layer, so accept the upgrade here.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleCommentFeed upgrades the connection and streams new comments on the
// post to the client as they are created.
func (s *Server) HandleCommentFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(r.PathValue("postId"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for post %s: %v", postID, err)
			return
		}

		client := ws.NewClient(s.Hub, postID, conn)
		s.Hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
