package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"risehub/internal/config"
	"risehub/internal/db"
	"risehub/internal/metrics"
	"risehub/internal/middleware"
	"risehub/internal/router"
	"risehub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Initialize Database
	db.Init(cfg)
	metrics.Register()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("risehub_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	deps := router.Deps{Config: cfg}

	images, err := services.NewImageStoreFromConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to configure image storage: %v", err)
	}
	if images != nil {
		deps.Images = images
	} else {
		log.Println("S3_BUCKET not set, image uploads disabled")
	}

	importer := services.NewNewsImporter(services.NewCrawlerService())
	deps.Importer = importer

	if cfg.NewsFeedURL != "" && cfg.NewsFeedUserID != "" {
		scheduler, err := services.StartNewsFeedJob(importer, cfg.NewsFeedURL, cfg.NewsFeedUserID, cfg.NewsFeedInterval)
		if err != nil {
			log.Fatalf("Failed to start news feed job: %v", err)
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				log.Printf("Scheduler shutdown: %v", err)
			}
		}()
	}

	router.RegisterRoutes(r, deps)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
