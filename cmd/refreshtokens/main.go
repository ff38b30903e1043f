package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	linkedinclient "socialcatalyst/clients/linkedin"
	"socialcatalyst/config"
	"socialcatalyst/db"
	"socialcatalyst/services/advocacy"
	"socialcatalyst/services/content"
	"socialcatalyst/services/employees"
	"socialcatalyst/services/txmanager"
	linkedinusecase "socialcatalyst/usecases/linkedin"
)

func main() {
	log.Printf("🔄 Starting LinkedIn token refresh process...")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Create database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	// Initialize services
	employeesRepo := db.NewPostgresEmployeesRepository(dbConn, cfg.DatabaseSchema)
	contentRepo := db.NewPostgresContentRepository(dbConn, cfg.DatabaseSchema)
	advocacyRepo := db.NewPostgresAdvocacyRepository(dbConn, cfg.DatabaseSchema)
	txManager := txmanager.NewTransactionManager(dbConn)

	employeesService := employees.NewEmployeesService(employeesRepo)
	contentService := content.NewContentService(contentRepo)
	advocacyService := advocacy.NewAdvocacyService(advocacyRepo)

	linkedinClient := linkedinclient.NewLinkedInClient(
		cfg.LinkedInConfig.ClientID,
		cfg.LinkedInConfig.ClientSecret,
		cfg.LinkedInConfig.RedirectURI,
	)

	useCase := linkedinusecase.NewLinkedInUseCase(
		linkedinClient,
		employeesService,
		contentService,
		advocacyService,
		txManager,
		cfg.AuthConfig.StateSecret,
	)

	refreshed, failed, err := useCase.RefreshExpiringTokens(context.Background())
	if err != nil {
		log.Fatalf("❌ Token refresh sweep failed: %v", err)
	}

	// Print summary
	log.Printf("✅ Token refresh process completed!")
	log.Printf("📊 Summary:")
	log.Printf("   - Tokens refreshed successfully: %d", refreshed)
	log.Printf("   - Errors encountered: %d", failed)

	if failed > 0 {
		os.Exit(1)
	}
}
