package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ainoggo/internal/apiclient"
	"ainoggo/internal/config"
	"ainoggo/internal/flow"
	"ainoggo/internal/handler"
	"ainoggo/internal/imagesource"
	"ainoggo/internal/port"
	"ainoggo/internal/router"
	s3storage "ainoggo/internal/storage/s3"
)

// @title       Ainoggo bridge API
// @version     1.0
// @description Local bridge over the document-analysis and legal-query flows.
// @BasePath    /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.SetFlags(cfg.Log.Flags())
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// s3:// references stay unsupported when AWS config cannot be loaded.
	var downloader port.ObjectDownloader
	if d, err := s3storage.NewS3Client(ctx, &cfg.S3); err != nil {
		log.Printf("s3 image references disabled: %v", err)
	} else {
		downloader = d
	}

	// Initialize image staging
	staging := imagesource.NewStaging(cfg.Staging.Dir)
	defer staging.Cleanup()
	// Local image_ref paths are only served from the gallery directory.
	resolver := imagesource.NewResolver(downloader, imagesource.WithLocalRoot(cfg.Gallery.Dir))
	if cfg.Gallery.Dir == "" {
		log.Printf("local image_ref paths disabled; set AINOGGO_GALLERY_DIR to enable them")
	}

	// Initialize flows
	api := apiclient.NewClient(&cfg.API)
	documents := flow.NewDocumentFlow(api, staging)
	defer documents.Close()
	queries := flow.NewQueryFlow(api)
	defer queries.Close()

	// Initialize handlers
	documentH := handler.NewDocumentHandler(documents, resolver)
	queryH := handler.NewQueryHandler(queries)
	healthH := handler.NewHealthHandler(cfg.API.BaseURL)

	r := router.Setup(cfg.CORS.AllowedOrigins, documentH, queryH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (backend %s)", cfg.Server.Port, cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
