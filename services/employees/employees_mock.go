package employees

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"socialcatalyst/models"
	"socialcatalyst/services"
)

// MockEmployeesService is a mock implementation of the EmployeesService interface
type MockEmployeesService struct {
	mock.Mock
}

func (m *MockEmployeesService) CreateEmployee(
	ctx context.Context,
	params services.CreateEmployeeParams,
) (*models.Employee, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeesService) GetEmployeeByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Employee], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Employee]), args.Error(1)
}

func (m *MockEmployeesService) GetEmployeeByEmail(
	ctx context.Context,
	email string,
) (mo.Option[*models.Employee], error) {
	args := m.Called(ctx, email)
	return args.Get(0).(mo.Option[*models.Employee]), args.Error(1)
}

func (m *MockEmployeesService) GetEmployeeByEmailOrCode(
	ctx context.Context,
	email, employeeCode string,
) (mo.Option[*models.Employee], error) {
	args := m.Called(ctx, email, employeeCode)
	return args.Get(0).(mo.Option[*models.Employee]), args.Error(1)
}

func (m *MockEmployeesService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Employee), args.Error(1)
}

func (m *MockEmployeesService) ListTopEmployees(ctx context.Context, limit int) ([]*models.Employee, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Employee), args.Error(1)
}

func (m *MockEmployeesService) UpdateLinkedInConnection(
	ctx context.Context,
	employeeID string,
	conn *models.LinkedInConnection,
) error {
	args := m.Called(ctx, employeeID, conn)
	return args.Error(0)
}

func (m *MockEmployeesService) AddPoints(ctx context.Context, employeeID string, points int) error {
	args := m.Called(ctx, employeeID, points)
	return args.Error(0)
}

func (m *MockEmployeesService) UpdateEmployeeProfile(
	ctx context.Context,
	employeeID, firstName, lastName, department string,
) error {
	args := m.Called(ctx, employeeID, firstName, lastName, department)
	return args.Error(0)
}
