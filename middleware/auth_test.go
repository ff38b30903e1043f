package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialcatalyst/appctx"
	"socialcatalyst/models"
	"socialcatalyst/services/employees"
)

const testJWTSecret = "test-jwt-secret"

func testEmployee(role models.EmployeeRole) *models.Employee {
	return &models.Employee{
		ID:           "e_01G0EZ1XTM37C5X11SQTDNCTM1",
		EmployeeCode: "EMP-100",
		FirstName:    "Jordan",
		LastName:     "Doe",
		Email:        "jordan@example.com",
		Role:         role,
	}
}

func okHandler(t *testing.T, called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		employee, ok := appctx.GetEmployee(r.Context())
		require.True(t, ok)
		require.NotEmpty(t, employee.ID)
		w.WriteHeader(http.StatusOK)
	}
}

func TestWithAuth(t *testing.T) {
	t.Run("accepts a valid issued token", func(t *testing.T) {
		employee := testEmployee(models.EmployeeRoleEmployee)
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByID", mock.Anything, employee.ID).
			Return(mo.Some(employee), nil)

		authMiddleware := NewAuthMiddleware(employeesService, testJWTSecret)
		token, err := authMiddleware.IssueToken(employee)
		require.NoError(t, err)

		called := false
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		authMiddleware.WithAuth(okHandler(t, &called))(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects missing authorization header", func(t *testing.T) {
		authMiddleware := NewAuthMiddleware(new(employees.MockEmployeesService), testJWTSecret)

		called := false
		req := httptest.NewRequest("GET", "/protected", nil)
		rec := httptest.NewRecorder()

		authMiddleware.WithAuth(okHandler(t, &called))(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing authorization header")
	})

	t.Run("rejects malformed authorization header", func(t *testing.T) {
		authMiddleware := NewAuthMiddleware(new(employees.MockEmployeesService), testJWTSecret)

		called := false
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()

		authMiddleware.WithAuth(okHandler(t, &called))(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		employee := testEmployee(models.EmployeeRoleEmployee)
		otherMiddleware := NewAuthMiddleware(new(employees.MockEmployeesService), "other-secret")
		token, err := otherMiddleware.IssueToken(employee)
		require.NoError(t, err)

		authMiddleware := NewAuthMiddleware(new(employees.MockEmployeesService), testJWTSecret)

		called := false
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		authMiddleware.WithAuth(okHandler(t, &called))(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid token")
	})

	t.Run("rejects expired token", func(t *testing.T) {
		now := time.Now()
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"employee_id": "e_01G0EZ1XTM37C5X11SQTDNCTM1",
			"iat":         now.Add(-2 * TokenTTL).Unix(),
			"exp":         now.Add(-TokenTTL).Unix(),
		})
		token, err := expired.SignedString([]byte(testJWTSecret))
		require.NoError(t, err)

		authMiddleware := NewAuthMiddleware(new(employees.MockEmployeesService), testJWTSecret)

		called := false
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		authMiddleware.WithAuth(okHandler(t, &called))(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects token for a deleted employee", func(t *testing.T) {
		employee := testEmployee(models.EmployeeRoleEmployee)
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByID", mock.Anything, employee.ID).
			Return(mo.None[*models.Employee](), nil)

		authMiddleware := NewAuthMiddleware(employeesService, testJWTSecret)
		token, err := authMiddleware.IssueToken(employee)
		require.NoError(t, err)

		called := false
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		authMiddleware.WithAuth(okHandler(t, &called))(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestWithAdminAuth(t *testing.T) {
	t.Run("allows admins through", func(t *testing.T) {
		admin := testEmployee(models.EmployeeRoleAdmin)
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByID", mock.Anything, admin.ID).
			Return(mo.Some(admin), nil)

		authMiddleware := NewAuthMiddleware(employeesService, testJWTSecret)
		token, err := authMiddleware.IssueToken(admin)
		require.NoError(t, err)

		called := false
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		authMiddleware.WithAdminAuth(okHandler(t, &called))(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects non-admin employees", func(t *testing.T) {
		employee := testEmployee(models.EmployeeRoleEmployee)
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByID", mock.Anything, employee.ID).
			Return(mo.Some(employee), nil)

		authMiddleware := NewAuthMiddleware(employeesService, testJWTSecret)
		token, err := authMiddleware.IssueToken(employee)
		require.NoError(t, err)

		called := false
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		authMiddleware.WithAdminAuth(okHandler(t, &called))(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "admin access required")
	})
}
