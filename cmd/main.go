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

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"socialcatalyst/activitynotif"
	linkedinclient "socialcatalyst/clients/linkedin"
	"socialcatalyst/config"
	"socialcatalyst/db"
	"socialcatalyst/handlers"
	"socialcatalyst/middleware"
	"socialcatalyst/services/advocacy"
	"socialcatalyst/services/analytics"
	"socialcatalyst/services/content"
	"socialcatalyst/services/employees"
	"socialcatalyst/services/txmanager"
	linkedinusecase "socialcatalyst/usecases/linkedin"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.AlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "socialcatalyst",
		LogsURL:     cfg.LogsURL,
	})

	// Initialize share activity notifications
	activitynotif.Init(cfg.ActivityWebhookURL, cfg.Environment)

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	employeesRepo := db.NewPostgresEmployeesRepository(dbConn, cfg.DatabaseSchema)
	contentRepo := db.NewPostgresContentRepository(dbConn, cfg.DatabaseSchema)
	advocacyRepo := db.NewPostgresAdvocacyRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager
	txManager := txmanager.NewTransactionManager(dbConn)

	employeesService := employees.NewEmployeesService(employeesRepo)
	contentService := content.NewContentService(contentRepo)
	advocacyService := advocacy.NewAdvocacyService(advocacyRepo)
	analyticsService := analytics.NewAnalyticsService(employeesService, contentService)

	linkedinClient := linkedinclient.NewLinkedInClient(
		cfg.LinkedInConfig.ClientID,
		cfg.LinkedInConfig.ClientSecret,
		cfg.LinkedInConfig.RedirectURI,
	)

	linkedinUseCase := linkedinusecase.NewLinkedInUseCase(
		linkedinClient,
		employeesService,
		contentService,
		advocacyService,
		txManager,
		cfg.AuthConfig.StateSecret,
	)

	authMiddleware := middleware.NewAuthMiddleware(employeesService, cfg.AuthConfig.JWTSecret)

	authHandler := handlers.NewAuthHandler(employeesService, authMiddleware)
	linkedinHandler := handlers.NewLinkedInHandler(linkedinUseCase, authMiddleware)
	advocacyHandler := handlers.NewAdvocacyHandler(linkedinUseCase, authMiddleware)
	contentHandler := handlers.NewContentHandler(contentService, authMiddleware)
	employeesHandler := handlers.NewEmployeesHandler(employeesService, authMiddleware)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, authMiddleware)

	// Create a new router with all endpoints under /api
	router := mux.NewRouter()
	apiRouter := router.PathPrefix("/api").Subrouter()

	authHandler.SetupEndpoints(apiRouter)
	linkedinHandler.SetupEndpoints(apiRouter)
	advocacyHandler.SetupEndpoints(apiRouter)
	contentHandler.SetupEndpoints(apiRouter)
	employeesHandler.SetupEndpoints(apiRouter)
	analyticsHandler.SetupEndpoints(apiRouter)

	// Health check endpoint
	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Start periodic refresh of expiring LinkedIn tokens
	refreshTicker := time.NewTicker(15 * time.Minute)
	go func() {
		for range refreshTicker.C {
			_ = alertMiddleware.WrapBackgroundTask("RefreshExpiringTokens", func() error {
				refreshed, failed, err := linkedinUseCase.RefreshExpiringTokens(context.Background())
				if err != nil {
					return err
				}
				if refreshed > 0 || failed > 0 {
					log.Printf("🔄 Token refresh sweep: %d refreshed, %d failed", refreshed, failed)
				}
				return nil
			})()
		}
	}()
	defer refreshTicker.Stop()

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
