package main

import (
	stdctx "context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogspace/internal/config"
	"blogspace/internal/database"
	"blogspace/internal/engine"
	"blogspace/internal/handlers"
	"blogspace/internal/middleware"
	"blogspace/internal/utils"
	"blogspace/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Debug {
		log.Printf("Debug mode on; config: host=%s port=%d db=%s origins=%v",
			cfg.Server.Host, cfg.Server.Port, cfg.Database.Name, cfg.AllowedOrigins)
	}

	store, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	indexCtx, cancel := stdctx.WithTimeout(stdctx.Background(), 10*time.Second)
	defer cancel()
	if err := store.EnsureUserIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := store.EnsurePostIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create post indexes: %v", err)
	}
	if err := store.EnsureCommentIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create comment indexes: %v", err)
	}

	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()

	hub := websocket.NewHub()
	go hub.Run()

	eng := engine.NewEngine(system, metrics, store, hub)
	auth := middleware.NewAuth(cfg.JWTSecret)
	server := handlers.NewServer(system, eng, metrics, auth, hub)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", server.HandleHealth())

	mux.HandleFunc("POST /users/register", server.HandleRegister())
	mux.HandleFunc("POST /users/login", server.HandleLogin())
	mux.HandleFunc("GET /users/{id}", server.HandleGetUser())

	mux.HandleFunc("GET /posts", server.HandleListPosts())
	mux.HandleFunc("POST /posts", auth.RequireAuth(server.HandleCreatePost()))
	mux.HandleFunc("GET /posts/trending", server.HandleGetTrending())
	mux.HandleFunc("GET /posts/{postId}", server.HandleGetPost())
	mux.HandleFunc("PUT /posts/{postId}", auth.RequireAuth(server.HandleUpdatePost()))
	mux.HandleFunc("DELETE /posts/{postId}", auth.RequireAuth(server.HandleDeletePost()))
	mux.HandleFunc("POST /posts/{postId}/like", auth.RequireAuth(server.HandleTogglePostLike()))

	mux.HandleFunc("GET /posts/{postId}/comments", server.HandleGetPostComments())
	mux.HandleFunc("POST /posts/{postId}/comments", auth.RequireAuth(server.HandleCreateComment()))
	mux.HandleFunc("DELETE /comments/{id}", auth.RequireAuth(server.HandleDeleteComment()))
	mux.HandleFunc("POST /comments/{id}/like", auth.RequireAuth(server.HandleToggleCommentLike()))

	mux.HandleFunc("GET /ws/posts/{postId}", server.HandleCommentFeed())

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	handler := middleware.CORSMiddleware(corsConfig)(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := stdctx.WithTimeout(stdctx.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("Error closing MongoDB connection: %v", err)
	}

	log.Println("Server stopped")
}
