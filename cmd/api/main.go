//	@title			King Arthur Capital Content API
//	@version		1.0
//	@description	CRUD content API for gallery, news, and career postings with admin-gated writes and image storage.
//
//	@host		localhost:8085
//	@BasePath	/api
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kingarthur/content-api/internal/auth"
	"github.com/kingarthur/content-api/internal/career"
	"github.com/kingarthur/content-api/internal/config"
	"github.com/kingarthur/content-api/internal/db"
	"github.com/kingarthur/content-api/internal/gallery"
	"github.com/kingarthur/content-api/internal/news"
	"github.com/kingarthur/content-api/internal/server"
	"github.com/kingarthur/content-api/internal/storage"

	_ "github.com/kingarthur/content-api/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStore(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: repository → service → handler
	authSvc := auth.NewService(cfg.JWTSecret, cfg.AdminPassword)

	gallerySvc := gallery.NewService(gallery.NewRepository(pool), store)
	newsSvc := news.NewService(news.NewRepository(pool), store)
	careerSvc := career.NewService(career.NewRepository(pool))

	handler := server.NewRouter(cfg, authSvc, server.Handlers{
		Auth:    auth.NewHandler(authSvc),
		Gallery: gallery.NewHandler(gallerySvc, cfg),
		News:    news.NewHandler(newsSvc, cfg),
		Career:  career.NewHandler(careerSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on %s (env=%s)", cfg.Addr(), cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
