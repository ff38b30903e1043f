package employees

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialcatalyst/models"
	"socialcatalyst/services"
)

// Validation failures must short-circuit before any repository access, so a
// nil repository is safe here.
func TestCreateEmployeeValidation(t *testing.T) {
	service := NewEmployeesService(nil)
	ctx := context.Background()

	valid := services.CreateEmployeeParams{
		EmployeeCode: "EMP001",
		FirstName:    "Jordan",
		LastName:     "Doe",
		Email:        "jordan@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.EmployeeRoleEmployee,
		Department:   "Marketing",
	}

	t.Run("empty employee code", func(t *testing.T) {
		params := valid
		params.EmployeeCode = ""
		_, err := service.CreateEmployee(ctx, params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "employee_code")
	})

	t.Run("empty email", func(t *testing.T) {
		params := valid
		params.Email = ""
		_, err := service.CreateEmployee(ctx, params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("empty password hash", func(t *testing.T) {
		params := valid
		params.PasswordHash = ""
		_, err := service.CreateEmployee(ctx, params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password_hash")
	})

	t.Run("unknown role", func(t *testing.T) {
		params := valid
		params.Role = "superuser"
		_, err := service.CreateEmployee(ctx, params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid role")
	})
}

func TestGetEmployeeByIDValidation(t *testing.T) {
	service := NewEmployeesService(nil)

	_, err := service.GetEmployeeByID(context.Background(), "not-a-ulid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid ULID")
}

func TestAddPointsValidation(t *testing.T) {
	service := NewEmployeesService(nil)
	ctx := context.Background()

	t.Run("invalid employee ID", func(t *testing.T) {
		err := service.AddPoints(ctx, "bogus", 25)
		require.Error(t, err)
	})

	t.Run("non-positive points", func(t *testing.T) {
		err := service.AddPoints(ctx, "e_01G0EZ1XTM37C5X11SQTDNCTM1", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "points must be positive")
	})
}

func TestUpdateLinkedInConnectionValidation(t *testing.T) {
	service := NewEmployeesService(nil)

	err := service.UpdateLinkedInConnection(context.Background(), "e_01G0EZ1XTM37C5X11SQTDNCTM1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection cannot be nil")
}
