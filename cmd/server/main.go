package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vocabdrill/internal/config"
	"vocabdrill/internal/database"
	"vocabdrill/internal/handlers"
	"vocabdrill/internal/libraryapi"
	"vocabdrill/internal/progress"
	"vocabdrill/internal/repository"
	"vocabdrill/internal/security"
	"vocabdrill/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if missing := cfg.DefaultSecrets(); len(missing) > 0 && !cfg.Debug {
		log.Fatalf("Refusing to start with placeholder secrets (%s); set them or run with DEBUG=true", strings.Join(missing, ", "))
	}
	startup := handlers.NewStartupStatus()

	// Initialize database with config (supports sqlite, postgres, mysql)
	startup.SetCurrentStep(handlers.StepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)
	startup.CompleteStep(handlers.StepDatabase)

	// Run migrations
	startup.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
	startup.CompleteStep(handlers.StepMigrations)

	// Initialize repositories
	startup.SetCurrentStep(handlers.StepServices)
	libraryRepo := repository.NewLibraryRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Initialize services
	quizService := service.NewQuizService(libraryRepo)
	libraryAPI := libraryapi.NewClient(cfg.LibraryAPIURL, cfg.LibraryAPITimeout)
	stores := handlers.NewStores(cfg.ProgressBackend, progressRepo, cfg.ProgressTTL)

	tokens := security.NewClientTokens(cfg.ClientTokenSecret, cfg.ClientTokenTTL)
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	limiter := security.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Initialize handlers
	middleware := handlers.NewMiddleware(tokens, csrf, limiter, cfg.TrustProxy)
	quizHandler := handlers.NewQuizHandler(quizService, libraryRepo, stores, csrf, cfg.FallbackQuotes)
	libraryHandler := handlers.NewLibraryHandler(libraryRepo, libraryAPI, stores, cfg.ItemsPerPage, cfg.FallbackQuotes, cfg.LoginURL)
	startup.CompleteStep(handlers.StepServices)

	if cfg.Debug {
		log.Printf("[DEBUG] progress backend=%s ttl=%s library api=%s", cfg.ProgressBackend, cfg.ProgressTTL, cfg.LibraryAPIURL)
	}

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", handlers.Healthz)
	mux.HandleFunc("GET /readyz", startup.Readyz)

	// Quiz routes
	mux.HandleFunc("GET /api/quiz/{mode}", quizHandler.GetState)
	mux.HandleFunc("POST /api/quiz/{mode}/check", middleware.CSRFProtect(quizHandler.Check))
	mux.HandleFunc("POST /api/quiz/{mode}/next", middleware.CSRFProtect(quizHandler.Next))
	mux.HandleFunc("POST /api/quiz/{mode}/reset", middleware.CSRFProtect(quizHandler.Reset))
	mux.HandleFunc("POST /api/quiz/word/hint-mode", middleware.CSRFProtect(quizHandler.ToggleHint))
	mux.HandleFunc("GET /api/card", quizHandler.GetCard)
	mux.HandleFunc("PUT /api/scale", middleware.CSRFProtect(quizHandler.SaveScale))

	// Library routes; the library site checks its own CSRF token
	mux.HandleFunc("GET /api/libraries", libraryHandler.List)
	mux.HandleFunc("PUT /api/libraries/{name}/select", libraryHandler.Select)
	mux.HandleFunc("PUT /api/libraries/{name}/favorite", libraryHandler.ToggleFavorite)
	mux.HandleFunc("DELETE /api/libraries/{name}", libraryHandler.Delete)

	// Wrap with identity, rate limiting and logging middleware
	handler := handlers.RequestID(handlers.Logging(middleware.RateLimit(middleware.ClientIdentity(mux))))

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start background cleanup
	if cfg.ProgressBackend == "sql" {
		go progress.Prune(ctx, progressRepo, cfg.ProgressTTL, cfg.CleanupInterval)
	}
	go cleanupRateLimiter(ctx, limiter, cfg.CleanupInterval)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()
	startup.MarkReady()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// cleanupRateLimiter periodically forgets idle clients
func cleanupRateLimiter(ctx context.Context, limiter *security.RateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := limiter.Cleanup(now); n > 0 {
				log.Printf("Rate limiter: dropped %d idle clients", n)
			}
		}
	}
}
