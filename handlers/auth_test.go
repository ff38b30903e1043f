package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"socialcatalyst/middleware"
	"socialcatalyst/models"
	"socialcatalyst/services"
	"socialcatalyst/services/employees"
)

const testJWTSecret = "test-jwt-secret"

func newAuthHandler(employeesService *employees.MockEmployeesService) *AuthHandler {
	authMiddleware := middleware.NewAuthMiddleware(employeesService, testJWTSecret)
	return NewAuthHandler(employeesService, authMiddleware)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleRegister(t *testing.T) {
	t.Run("registers a new employee and issues a token", func(t *testing.T) {
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByEmailOrCode", mock.Anything, "jordan@example.com", "EMP-100").
			Return(mo.None[*models.Employee](), nil)

		var createdParams services.CreateEmployeeParams
		employeesService.On("CreateEmployee", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				createdParams = args.Get(1).(services.CreateEmployeeParams)
			}).
			Return(&models.Employee{
				ID:           "e_01G0EZ1XTM37C5X11SQTDNCTM1",
				EmployeeCode: "EMP-100",
				FirstName:    "Jordan",
				LastName:     "Doe",
				Email:        "jordan@example.com",
				Role:         models.EmployeeRoleEmployee,
				Level:        1,
			}, nil)

		handler := newAuthHandler(employeesService)
		rec := postJSON(t, handler.HandleRegister, "/auth/register", RegisterRequest{
			EmployeeCode: "EMP-100",
			FirstName:    "Jordan",
			LastName:     "Doe",
			Email:        "jordan@example.com",
			Password:     "long-enough-password",
			Department:   "Engineering",
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "jordan@example.com", resp.Employee.Email)

		// Registration always creates regular employees, never admins.
		assert.Equal(t, models.EmployeeRoleEmployee, createdParams.Role)

		// The stored hash must verify against the submitted password.
		require.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(createdParams.PasswordHash), []byte("long-enough-password")))
	})

	t.Run("rejects duplicate email or code", func(t *testing.T) {
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByEmailOrCode", mock.Anything, "jordan@example.com", "EMP-100").
			Return(mo.Some(&models.Employee{ID: "e_01G0EZ1XTM37C5X11SQTDNCTM1"}), nil)

		handler := newAuthHandler(employeesService)
		rec := postJSON(t, handler.HandleRegister, "/auth/register", RegisterRequest{
			EmployeeCode: "EMP-100",
			Email:        "jordan@example.com",
			Password:     "long-enough-password",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
		employeesService.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		employeesService := new(employees.MockEmployeesService)

		handler := newAuthHandler(employeesService)
		rec := postJSON(t, handler.HandleRegister, "/auth/register", RegisterRequest{
			EmployeeCode: "EMP-100",
			Email:        "jordan@example.com",
			Password:     "short",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "at least 8 characters")
	})
}

func TestHandleLogin(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	storedEmployee := &models.Employee{
		ID:           "e_01G0EZ1XTM37C5X11SQTDNCTM1",
		EmployeeCode: "EMP-100",
		Email:        "jordan@example.com",
		PasswordHash: string(passwordHash),
		Role:         models.EmployeeRoleEmployee,
	}

	t.Run("issues token for valid credentials", func(t *testing.T) {
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByEmail", mock.Anything, "jordan@example.com").
			Return(mo.Some(storedEmployee), nil)

		handler := newAuthHandler(employeesService)
		rec := postJSON(t, handler.HandleLogin, "/auth/login", LoginRequest{
			Email:    "jordan@example.com",
			Password: "correct-password",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, storedEmployee.ID, resp.Employee.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByEmail", mock.Anything, "jordan@example.com").
			Return(mo.Some(storedEmployee), nil)

		handler := newAuthHandler(employeesService)
		rec := postJSON(t, handler.HandleLogin, "/auth/login", LoginRequest{
			Email:    "jordan@example.com",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid credentials")
	})

	t.Run("rejects unknown email with the same message", func(t *testing.T) {
		employeesService := new(employees.MockEmployeesService)
		employeesService.On("GetEmployeeByEmail", mock.Anything, "nobody@example.com").
			Return(mo.None[*models.Employee](), nil)

		handler := newAuthHandler(employeesService)
		rec := postJSON(t, handler.HandleLogin, "/auth/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever-password",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid credentials")
	})
}
