package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	dbtx "socialcatalyst/db/tx"
	"socialcatalyst/models"
)

type PostgresEmployeesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for employees table
var employeesColumns = []string{
	"id",
	"employee_code",
	"first_name",
	"last_name",
	"email",
	"password_hash",
	"role",
	"department",
	"total_points",
	"level",
	"linkedin_is_connected",
	"linkedin_profile_id",
	"linkedin_profile_url",
	"linkedin_access_token",
	"linkedin_refresh_token",
	"linkedin_token_expiry",
	"linkedin_permissions",
	"linkedin_last_sync",
	"created_at",
	"updated_at",
}

func NewPostgresEmployeesRepository(db *sqlx.DB, schema string) *PostgresEmployeesRepository {
	return &PostgresEmployeesRepository{db: db, schema: schema}
}

func (r *PostgresEmployeesRepository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s.employees (
			id, employee_code, first_name, last_name, email, password_hash,
			role, department, total_points, level,
			linkedin_is_connected, linkedin_profile_id, linkedin_profile_url,
			linkedin_access_token, linkedin_refresh_token, linkedin_token_expiry,
			linkedin_permissions, linkedin_last_sync,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())`, r.schema)

	_, err := db.ExecContext(ctx, query,
		employee.ID,
		employee.EmployeeCode,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.PasswordHash,
		employee.Role,
		employee.Department,
		employee.TotalPoints,
		employee.Level,
		employee.LinkedInConnected,
		employee.LinkedInProfileID,
		employee.LinkedInProfileURL,
		employee.LinkedInAccessToken,
		employee.LinkedInRefreshToken,
		employee.LinkedInTokenExpiry,
		pq.Array(employee.LinkedInPermissions),
		employee.LinkedInLastSync,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

func (r *PostgresEmployeesRepository) GetEmployeeByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Employee], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(employeesColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.employees 
		WHERE id = $1`, returningStr, r.schema)

	employee := &models.Employee{}
	err := db.QueryRowxContext(ctx, query, id).StructScan(employee)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Employee](), nil
		}
		return mo.None[*models.Employee](), fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return mo.Some(employee), nil
}

func (r *PostgresEmployeesRepository) GetEmployeeByEmail(
	ctx context.Context,
	email string,
) (mo.Option[*models.Employee], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(employeesColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.employees 
		WHERE email = $1`, returningStr, r.schema)

	employee := &models.Employee{}
	err := db.QueryRowxContext(ctx, query, email).StructScan(employee)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Employee](), nil
		}
		return mo.None[*models.Employee](), fmt.Errorf("failed to get employee by email: %w", err)
	}

	return mo.Some(employee), nil
}

func (r *PostgresEmployeesRepository) GetEmployeeByEmailOrCode(
	ctx context.Context,
	email, employeeCode string,
) (mo.Option[*models.Employee], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(employeesColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.employees 
		WHERE email = $1 OR employee_code = $2`, returningStr, r.schema)

	employee := &models.Employee{}
	err := db.QueryRowxContext(ctx, query, email, employeeCode).StructScan(employee)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Employee](), nil
		}
		return mo.None[*models.Employee](), fmt.Errorf("failed to get employee by email or code: %w", err)
	}

	return mo.Some(employee), nil
}

func (r *PostgresEmployeesRepository) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(employeesColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.employees 
		ORDER BY created_at DESC`, returningStr, r.schema)

	employees := []*models.Employee{}
	if err := db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

func (r *PostgresEmployeesRepository) ListTopEmployees(
	ctx context.Context,
	limit int,
) ([]*models.Employee, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(employeesColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.employees 
		ORDER BY total_points DESC, created_at ASC
		LIMIT $1`, returningStr, r.schema)

	employees := []*models.Employee{}
	if err := db.SelectContext(ctx, &employees, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list top employees: %w", err)
	}

	return employees, nil
}

// UpdateLinkedInConnection replaces the employee's embedded connection
// wholesale. There is no partial merge of connection fields.
func (r *PostgresEmployeesRepository) UpdateLinkedInConnection(
	ctx context.Context,
	employeeID string,
	conn *models.LinkedInConnection,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.employees 
		SET linkedin_is_connected = $2,
			linkedin_profile_id = $3,
			linkedin_profile_url = $4,
			linkedin_access_token = $5,
			linkedin_refresh_token = $6,
			linkedin_token_expiry = $7,
			linkedin_permissions = $8,
			linkedin_last_sync = $9,
			updated_at = NOW()
		WHERE id = $1`, r.schema)

	result, err := db.ExecContext(ctx, query,
		employeeID,
		conn.LinkedInConnected,
		conn.LinkedInProfileID,
		conn.LinkedInProfileURL,
		conn.LinkedInAccessToken,
		conn.LinkedInRefreshToken,
		conn.LinkedInTokenExpiry,
		pq.Array(conn.LinkedInPermissions),
		conn.LinkedInLastSync,
	)
	if err != nil {
		return fmt.Errorf("failed to update linkedin connection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("employee not found: %s", employeeID)
	}

	return nil
}

// AddPoints increments the employee's advocacy points and recomputes the
// level (one level per PointsPerLevel points).
func (r *PostgresEmployeesRepository) AddPoints(ctx context.Context, employeeID string, points int) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.employees 
		SET total_points = total_points + $2,
			level = (total_points + $2) / $3 + 1,
			updated_at = NOW()
		WHERE id = $1`, r.schema)

	result, err := db.ExecContext(ctx, query, employeeID, points, models.PointsPerLevel)
	if err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("employee not found: %s", employeeID)
	}

	return nil
}

func (r *PostgresEmployeesRepository) UpdateEmployeeProfile(
	ctx context.Context,
	employeeID, firstName, lastName, department string,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.employees 
		SET first_name = $2,
			last_name = $3,
			department = $4,
			updated_at = NOW()
		WHERE id = $1`, r.schema)

	result, err := db.ExecContext(ctx, query, employeeID, firstName, lastName, department)
	if err != nil {
		return fmt.Errorf("failed to update employee profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("employee not found: %s", employeeID)
	}

	return nil
}
