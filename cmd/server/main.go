// server runs the translate-to-QR web application: it translates
// submitted text via Google Cloud Translation, stores the result for 24
// hours, and returns a QR code pointing at the stored translation.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/lingoqr/lingoqr/internal/api/handlers"
	"github.com/lingoqr/lingoqr/internal/config"
	"github.com/lingoqr/lingoqr/internal/database"
	"github.com/lingoqr/lingoqr/internal/metrics"
	"github.com/lingoqr/lingoqr/internal/middleware"
	"github.com/lingoqr/lingoqr/internal/services"
	"github.com/lingoqr/lingoqr/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	translator := services.NewTranslationService()
	catalog := services.NewLanguageCatalog(translator)
	store := services.NewTranslationStore(db)
	archive := services.NewImageArchive(cfg.QRArchiveDir)
	resolver := services.NewResolver(store, catalog, archive)
	sweeper := services.NewSweeper(store, archive)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Start(ctx)

	metrics.UpdateStoreMetrics(db)

	router := gin.Default()
	router.Use(metrics.HTTPMetrics())
	router.Use(cors.Default())

	tmpl, err := web.Templates()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)

	limiter := rate.NewLimiter(rate.Limit(cfg.TranslateRPS), burstFor(cfg.TranslateRPS))
	translateHandler := handlers.NewTranslateHandler(translator, store, archive, catalog, cfg.PublicBaseURL, limiter)
	readHandler := handlers.NewReadHandler(resolver)
	adminHandler := handlers.NewAdminHandler(store, catalog, archive, sweeper)

	router.GET("/", translateHandler.HomePage)
	router.POST("/translate", translateHandler.Translate)
	router.GET("/read/:id", readHandler.ReadPage)

	api := router.Group("/api")
	{
		api.GET("/languages", translateHandler.ListLanguages)
		api.POST("/translate", translateHandler.TranslateJSON)
		api.GET("/translations/:id", readHandler.GetTranslation)

		admin := api.Group("/admin", middleware.AdminKeyAuth(cfg.AdminKey))
		admin.GET("/stats", adminHandler.GetStats)
		admin.POST("/sweep", adminHandler.TriggerSweep)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// burstFor sizes the limiter burst: at least one request, otherwise one
// second's worth.
func burstFor(rps float64) int {
	if rps < 1 {
		return 1
	}
	return int(rps)
}
