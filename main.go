package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xiaot623/wrapped/internal/adapter/bereal"
	"github.com/xiaot623/wrapped/internal/adapter/notify"
	"github.com/xiaot623/wrapped/internal/config"
	"github.com/xiaot623/wrapped/internal/media"
	"github.com/xiaot623/wrapped/internal/service"
	"github.com/xiaot623/wrapped/internal/session"
	"github.com/xiaot623/wrapped/internal/storage"
	transport "github.com/xiaot623/wrapped/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting wrapped server...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Provider: %s", cfg.ProviderBaseURL)
	log.Printf("Content root: %s", cfg.ContentRoot)
	log.Printf("Exports root: %s", cfg.ExportsRoot)

	// Initialize provider client
	provider := bereal.NewProvider(cfg.ProviderBaseURL, cfg.ProviderTimeout)

	// Initialize session store
	sessions := session.NewStore(cfg.TokenTTL)

	// Initialize artifact lifecycle manager
	artifacts := storage.NewManager(cfg.ContentRoot, cfg.ExportsRoot)

	// Initialize media pipeline
	compositor, err := media.NewCompositor(cfg.OutlinePath())
	if err != nil {
		log.Fatalf("Failed to load outline template: %v", err)
	}
	endcard, err := media.NewEndcardRenderer(cfg.EndcardTemplatePath(), cfg.FontPath())
	if err != nil {
		log.Fatalf("Failed to initialize endcard renderer: %v", err)
	}
	assembler := media.NewAssembler(cfg.ClassicDwell, cfg.EndcardDwell)

	// Initialize notifier
	notifier := notify.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.Environment)

	// Initialize service
	svc := service.New(provider, sessions, artifacts, compositor, endcard, assembler, notifier, cfg)

	// Create HTTP server
	server := transport.NewServer(svc, cfg.ExportsRoot)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Server stopped")
}
