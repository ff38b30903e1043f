package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialcatalyst/appctx"
	"socialcatalyst/core"
	"socialcatalyst/models"
	"socialcatalyst/services"
)

// TokenTTL is how long issued login tokens stay valid.
const TokenTTL = 7 * 24 * time.Hour

// AuthMiddleware handles JWT bearer authentication for API requests
type AuthMiddleware struct {
	employeesService services.EmployeesService
	jwtSecret        []byte
}

// NewAuthMiddleware creates a new authentication middleware instance
func NewAuthMiddleware(employeesService services.EmployeesService, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		employeesService: employeesService,
		jwtSecret:        []byte(jwtSecret),
	}
}

// IssueToken signs a login token for the employee.
func (m *AuthMiddleware) IssueToken(employee *models.Employee) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"employee_id": employee.ID,
		"email":       employee.Email,
		"iat":         now.Unix(),
		"exp":         now.Add(TokenTTL).Unix(),
	})

	signed, err := token.SignedString(m.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// WithAuth wraps an HTTP handler with JWT authentication
func (m *AuthMiddleware) WithAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("🔐 Authentication middleware processing request from %s", r.RemoteAddr)

		// Check if we're in testing mode
		if os.Getenv("TESTING_MODE") == "true" {
			log.Printf("🧪 Testing mode enabled - skipping token validation")
			testEmployee := &models.Employee{
				ID:           core.NewID("e"),
				EmployeeCode: "TEST001",
				Email:        "test@socialcatalyst.local",
				Role:         models.EmployeeRoleAdmin,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}

			log.Printf("✅ Test employee created: %s", testEmployee.ID)
			ctx := appctx.SetEmployee(r.Context(), testEmployee)
			next(w, r.WithContext(ctx))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Printf("❌ Missing Authorization header")
			m.writeErrorResponse(w, "missing authorization header", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Printf("❌ Invalid Authorization header format")
			m.writeErrorResponse(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			log.Printf("❌ Empty bearer token")
			m.writeErrorResponse(w, "empty bearer token", http.StatusUnauthorized)
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.jwtSecret, nil
		})
		if err != nil {
			log.Printf("❌ JWT verification failed: %v", err)
			m.writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			log.Printf("❌ Token has no employee_id claim")
			m.writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
			return
		}

		maybeEmployee, err := m.employeesService.GetEmployeeByID(r.Context(), employeeID)
		if err != nil {
			log.Printf("❌ Failed to look up employee: %v", err)
			m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if !maybeEmployee.IsPresent() {
			log.Printf("❌ Token references unknown employee: %s", employeeID)
			m.writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
			return
		}
		employee := maybeEmployee.MustGet()

		log.Printf("✅ Employee authenticated successfully: %s", employee.ID)
		ctx := appctx.SetEmployee(r.Context(), employee)
		next(w, r.WithContext(ctx))
	}
}

// WithAdminAuth wraps an HTTP handler with JWT authentication plus an admin
// role check.
func (m *AuthMiddleware) WithAdminAuth(next http.HandlerFunc) http.HandlerFunc {
	return m.WithAuth(func(w http.ResponseWriter, r *http.Request) {
		employee, ok := appctx.GetEmployee(r.Context())
		if !ok {
			m.writeErrorResponse(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !employee.IsAdmin() {
			log.Printf("❌ Employee %s is not an admin", employee.ID)
			m.writeErrorResponse(w, "admin access required", http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

// writeErrorResponse writes a standardized error response
func (m *AuthMiddleware) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("❌ Failed to encode error response: %v", err)
	}
}
