package employees

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"socialcatalyst/core"
	"socialcatalyst/db"
	"socialcatalyst/models"
	"socialcatalyst/services"
)

type EmployeesService struct {
	employeesRepo *db.PostgresEmployeesRepository
}

func NewEmployeesService(repo *db.PostgresEmployeesRepository) *EmployeesService {
	return &EmployeesService{employeesRepo: repo}
}

func (s *EmployeesService) CreateEmployee(
	ctx context.Context,
	params services.CreateEmployeeParams,
) (*models.Employee, error) {
	log.Printf("📋 Starting to create employee with code: %s, email: %s", params.EmployeeCode, params.Email)

	if params.EmployeeCode == "" {
		return nil, fmt.Errorf("employee_code cannot be empty")
	}
	if params.Email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if params.PasswordHash == "" {
		return nil, fmt.Errorf("password_hash cannot be empty")
	}
	if params.Role != models.EmployeeRoleEmployee && params.Role != models.EmployeeRoleAdmin {
		return nil, fmt.Errorf("invalid role: %s", params.Role)
	}

	employee := &models.Employee{
		ID:           core.NewID("e"),
		EmployeeCode: params.EmployeeCode,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		Department:   params.Department,
		TotalPoints:  0,
		Level:        1,
	}

	if err := s.employeesRepo.CreateEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	log.Printf("📋 Completed successfully - created employee with ID: %s", employee.ID)
	return employee, nil
}

func (s *EmployeesService) GetEmployeeByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Employee], error) {
	log.Printf("📋 Starting to get employee by ID: %s", id)

	if !core.IsValidULID(id) {
		return mo.None[*models.Employee](), fmt.Errorf("employee ID must be a valid ULID")
	}

	maybeEmployee, err := s.employeesRepo.GetEmployeeByID(ctx, id)
	if err != nil {
		return mo.None[*models.Employee](), fmt.Errorf("failed to get employee by ID: %w", err)
	}

	log.Printf("📋 Completed successfully - employee lookup for ID: %s, found: %t", id, maybeEmployee.IsPresent())
	return maybeEmployee, nil
}

func (s *EmployeesService) GetEmployeeByEmail(
	ctx context.Context,
	email string,
) (mo.Option[*models.Employee], error) {
	log.Printf("📋 Starting to get employee by email: %s", email)

	if email == "" {
		return mo.None[*models.Employee](), fmt.Errorf("email cannot be empty")
	}

	maybeEmployee, err := s.employeesRepo.GetEmployeeByEmail(ctx, email)
	if err != nil {
		return mo.None[*models.Employee](), fmt.Errorf("failed to get employee by email: %w", err)
	}

	log.Printf("📋 Completed successfully - employee lookup by email, found: %t", maybeEmployee.IsPresent())
	return maybeEmployee, nil
}

func (s *EmployeesService) GetEmployeeByEmailOrCode(
	ctx context.Context,
	email, employeeCode string,
) (mo.Option[*models.Employee], error) {
	log.Printf("📋 Starting to get employee by email or code")

	if email == "" && employeeCode == "" {
		return mo.None[*models.Employee](), fmt.Errorf("email and employee_code cannot both be empty")
	}

	maybeEmployee, err := s.employeesRepo.GetEmployeeByEmailOrCode(ctx, email, employeeCode)
	if err != nil {
		return mo.None[*models.Employee](), fmt.Errorf("failed to get employee by email or code: %w", err)
	}

	log.Printf("📋 Completed successfully - employee lookup by email or code, found: %t", maybeEmployee.IsPresent())
	return maybeEmployee, nil
}

func (s *EmployeesService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	log.Printf("📋 Starting to list employees")

	employees, err := s.employeesRepo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	log.Printf("📋 Completed successfully - listed %d employees", len(employees))
	return employees, nil
}

func (s *EmployeesService) ListTopEmployees(ctx context.Context, limit int) ([]*models.Employee, error) {
	log.Printf("📋 Starting to list top %d employees", limit)

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	employees, err := s.employeesRepo.ListTopEmployees(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top employees: %w", err)
	}

	log.Printf("📋 Completed successfully - listed %d top employees", len(employees))
	return employees, nil
}

// UpdateLinkedInConnection replaces the employee's stored connection wholesale.
func (s *EmployeesService) UpdateLinkedInConnection(
	ctx context.Context,
	employeeID string,
	conn *models.LinkedInConnection,
) error {
	log.Printf("📋 Starting to update LinkedIn connection for employee: %s", employeeID)

	if !core.IsValidULID(employeeID) {
		return fmt.Errorf("employee ID must be a valid ULID")
	}
	if conn == nil {
		return fmt.Errorf("connection cannot be nil")
	}

	if err := s.employeesRepo.UpdateLinkedInConnection(ctx, employeeID, conn); err != nil {
		return fmt.Errorf("failed to update LinkedIn connection: %w", err)
	}

	log.Printf("📋 Completed successfully - updated LinkedIn connection for employee: %s, connected: %t",
		employeeID, conn.LinkedInConnected)
	return nil
}

func (s *EmployeesService) AddPoints(ctx context.Context, employeeID string, points int) error {
	log.Printf("📋 Starting to add %d points to employee: %s", points, employeeID)

	if !core.IsValidULID(employeeID) {
		return fmt.Errorf("employee ID must be a valid ULID")
	}
	if points <= 0 {
		return fmt.Errorf("points must be positive")
	}

	if err := s.employeesRepo.AddPoints(ctx, employeeID, points); err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}

	log.Printf("📋 Completed successfully - added %d points to employee: %s", points, employeeID)
	return nil
}

func (s *EmployeesService) UpdateEmployeeProfile(
	ctx context.Context,
	employeeID, firstName, lastName, department string,
) error {
	log.Printf("📋 Starting to update profile for employee: %s", employeeID)

	if !core.IsValidULID(employeeID) {
		return fmt.Errorf("employee ID must be a valid ULID")
	}
	if firstName == "" || lastName == "" {
		return fmt.Errorf("first_name and last_name cannot be empty")
	}

	if err := s.employeesRepo.UpdateEmployeeProfile(ctx, employeeID, firstName, lastName, department); err != nil {
		return fmt.Errorf("failed to update employee profile: %w", err)
	}

	log.Printf("📋 Completed successfully - updated profile for employee: %s", employeeID)
	return nil
}
