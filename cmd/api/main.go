//	@title			Feedline API
//	@version		1.0
//	@description	Backend for Feedline — a minimal social feed with media attachments.
//
//	@host		localhost:8080
//	@BasePath	/api

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/feedline/service/internal/blob"
	"github.com/feedline/service/internal/config"
	"github.com/feedline/service/internal/db"
	"github.com/feedline/service/internal/media"
	appMiddleware "github.com/feedline/service/internal/middleware"
	"github.com/feedline/service/internal/post"

	_ "github.com/feedline/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	client, database, err := db.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	blobStore, err := newBlobStore(cfg, database, logger)
	if err != nil {
		log.Fatalf("blob store init failed: %v", err)
	}

	// Wire dependencies: store → service → handler
	postStore := post.NewMongoStore(database)
	postSvc := post.NewService(postStore, blobStore, logger)
	postHandler := post.NewHandler(postSvc, logger)
	mediaHandler := media.NewHandler(blobStore, logger)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.ClientOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Post("/", postHandler.CreatePost)
			r.Get("/", postHandler.GetAllPosts)
			r.Get("/user/{userId}", postHandler.GetUserPosts)
			r.Put("/{postId}", postHandler.UpdatePost)
			r.Delete("/{postId}", postHandler.DeletePost)
		})

		r.Get("/media/{mediaId}", mediaHandler.GetMedia)

		// Legacy local-disk uploads, served read-only.
		r.Handle("/uploads/*", http.StripPrefix("/api/uploads/",
			http.FileServer(http.Dir(cfg.UploadDir))))
	})

	// No WriteTimeout: media downloads stream until done or failed.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.AppEnv, "blobBackend", cfg.BlobBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	logger.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	logger.Info("server stopped")
}

// newBlobStore selects the media blob backend from configuration. GridFS is
// the default; MinIO serves S3-compatible deployments and memory is for
// local experimentation.
func newBlobStore(cfg *config.Config, database *mongo.Database, logger *slog.Logger) (blob.Store, error) {
	switch cfg.BlobBackend {
	case "minio":
		return blob.NewMinioStore(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StorageUseSSL,
			logger,
		)
	case "memory":
		return blob.NewMemoryStore(), nil
	case "gridfs", "":
		return blob.NewGridFSStore(database)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
