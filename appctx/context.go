package appctx

import (
	"context"

	"socialcatalyst/models"
)

// Context key for storing the authenticated employee entity
type contextKey string

const EmployeeContextKey contextKey = "employee"

// SetEmployee adds the employee entity to the request context
func SetEmployee(ctx context.Context, employee *models.Employee) context.Context {
	return context.WithValue(ctx, EmployeeContextKey, employee)
}

// GetEmployee extracts the employee entity from the request context
func GetEmployee(ctx context.Context) (*models.Employee, bool) {
	employee, ok := ctx.Value(EmployeeContextKey).(*models.Employee)
	return employee, ok
}
