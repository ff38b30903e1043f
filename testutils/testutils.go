package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"socialcatalyst/appctx"
	"socialcatalyst/config"
	"socialcatalyst/core"
	"socialcatalyst/db"
	"socialcatalyst/models"
)

// LoadTestConfig loads configuration for tests from environment variables
func LoadTestConfig() (*config.AppConfig, error) {
	// Try to load environment variables from various possible locations
	_ = godotenv.Load("../.env.test") // From services/ directory
	_ = godotenv.Load(".env.test")    // From root directory
	_ = godotenv.Load()               // Default .env file

	databaseURL := os.Getenv("DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseSchema == "" {
		return nil, fmt.Errorf("DB_SCHEMA is not set")
	}

	return &config.AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
		AuthConfig: config.AuthConfig{
			JWTSecret:   "test-jwt-secret",
			StateSecret: "test-state-secret",
		},
	}, nil
}

// CreateTestEmployee creates a test employee with unique identifiers to avoid
// constraint violations
func CreateTestEmployee(t *testing.T, employeesRepo *db.PostgresEmployeesRepository) *models.Employee {
	suffix := uuid.New().String()
	employee := &models.Employee{
		ID:           core.NewID("e"),
		EmployeeCode: "test-code-" + suffix,
		FirstName:    "Test",
		LastName:     "Employee",
		Email:        "test-" + suffix + "@example.com",
		PasswordHash: "test-password-hash",
		Role:         models.EmployeeRoleEmployee,
		Department:   "Engineering",
		Level:        1,
	}

	err := employeesRepo.CreateEmployee(context.Background(), employee)
	require.NoError(t, err, "Failed to create test employee")
	return employee
}

// CreateTestAdmin creates a test employee with the admin role
func CreateTestAdmin(t *testing.T, employeesRepo *db.PostgresEmployeesRepository) *models.Employee {
	suffix := uuid.New().String()
	admin := &models.Employee{
		ID:           core.NewID("e"),
		EmployeeCode: "test-admin-" + suffix,
		FirstName:    "Test",
		LastName:     "Admin",
		Email:        "admin-" + suffix + "@example.com",
		PasswordHash: "test-password-hash",
		Role:         models.EmployeeRoleAdmin,
		Department:   "Marketing",
		Level:        1,
	}

	err := employeesRepo.CreateEmployee(context.Background(), admin)
	require.NoError(t, err, "Failed to create test admin")
	return admin
}

// CreateTestContext creates a context with the given employee set for testing
func CreateTestContext(employee *models.Employee) context.Context {
	ctx := context.Background()
	return appctx.SetEmployee(ctx, employee)
}

// CreateTestContent creates approved test content for sharing tests
func CreateTestContent(t *testing.T, contentRepo *db.PostgresContentRepository, createdBy string) *models.Content {
	testContent := &models.Content{
		ID:          core.NewID("c"),
		Title:       "Test Content " + uuid.New().String(),
		Description: "Content created for integration tests",
		Type:        "article",
		Category:    "engineering",
		Tags:        []string{"testing"},
		IsApproved:  true,
		CreatedBy:   createdBy,
	}

	err := contentRepo.CreateContent(context.Background(), testContent)
	require.NoError(t, err, "Failed to create test content")
	return testContent
}
