package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialcatalyst/models"
)

const testSchema = "socialcatalyst_test"

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func employeeRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(employeesColumns).AddRow(
		"e_01G0EZ1XTM37C5X11SQTDNCTM1", "EMP-100", "Jordan", "Doe", "jordan@example.com",
		"$2a$10$hash", "employee", "Engineering", 75, 1,
		true, "li-member-42", "https://www.linkedin.com/in/li-member-42",
		"access-token", "refresh-token", now.Add(time.Hour),
		"{openid,profile}", now,
		now, now,
	)
}

func TestGetEmployeeByID(t *testing.T) {
	t.Run("returns employee when found", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewPostgresEmployeesRepository(sqlxDB, testSchema)

		mock.ExpectQuery(`SELECT (.+) FROM socialcatalyst_test.employees WHERE id = \$1`).
			WithArgs("e_01G0EZ1XTM37C5X11SQTDNCTM1").
			WillReturnRows(employeeRows())

		maybeEmployee, err := repo.GetEmployeeByID(context.Background(), "e_01G0EZ1XTM37C5X11SQTDNCTM1")
		require.NoError(t, err)
		require.True(t, maybeEmployee.IsPresent())

		employee := maybeEmployee.MustGet()
		assert.Equal(t, "jordan@example.com", employee.Email)
		assert.Equal(t, 75, employee.TotalPoints)
		assert.True(t, employee.LinkedInConnected)
		assert.Equal(t, "li-member-42", employee.LinkedInProfileID)
		assert.Equal(t, []string{"openid", "profile"}, []string(employee.LinkedInPermissions))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns none when no rows", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewPostgresEmployeesRepository(sqlxDB, testSchema)

		mock.ExpectQuery(`SELECT (.+) FROM socialcatalyst_test.employees WHERE id = \$1`).
			WithArgs("e_01G0EZ1XTM37C5X11SQTDNCTM9").
			WillReturnError(sql.ErrNoRows)

		maybeEmployee, err := repo.GetEmployeeByID(context.Background(), "e_01G0EZ1XTM37C5X11SQTDNCTM9")
		require.NoError(t, err)
		assert.False(t, maybeEmployee.IsPresent())

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddPoints(t *testing.T) {
	t.Run("increments points and recomputes level", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewPostgresEmployeesRepository(sqlxDB, testSchema)

		mock.ExpectExec(`UPDATE socialcatalyst_test.employees`).
			WithArgs("e_01G0EZ1XTM37C5X11SQTDNCTM1", 25, models.PointsPerLevel).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AddPoints(context.Background(), "e_01G0EZ1XTM37C5X11SQTDNCTM1", 25)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("errors when employee does not exist", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewPostgresEmployeesRepository(sqlxDB, testSchema)

		mock.ExpectExec(`UPDATE socialcatalyst_test.employees`).
			WithArgs("e_01G0EZ1XTM37C5X11SQTDNCTM9", 25, models.PointsPerLevel).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AddPoints(context.Background(), "e_01G0EZ1XTM37C5X11SQTDNCTM9", 25)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "employee not found")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateLinkedInConnection(t *testing.T) {
	t.Run("replaces the connection wholesale", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewPostgresEmployeesRepository(sqlxDB, testSchema)

		expiry := time.Now().Add(time.Hour)
		lastSync := time.Now()
		conn := &models.LinkedInConnection{
			LinkedInConnected:    true,
			LinkedInProfileID:    "li-member-42",
			LinkedInProfileURL:   "https://www.linkedin.com/in/li-member-42",
			LinkedInAccessToken:  "access-token",
			LinkedInRefreshToken: "refresh-token",
			LinkedInTokenExpiry:  &expiry,
			LinkedInPermissions:  []string{"openid", "profile", "w_member_social", "email"},
			LinkedInLastSync:     &lastSync,
		}

		mock.ExpectExec(`UPDATE socialcatalyst_test.employees`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateLinkedInConnection(context.Background(), "e_01G0EZ1XTM37C5X11SQTDNCTM1", conn)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clearing fields disconnects the employee", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)
		repo := NewPostgresEmployeesRepository(sqlxDB, testSchema)

		mock.ExpectExec(`UPDATE socialcatalyst_test.employees`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateLinkedInConnection(
			context.Background(), "e_01G0EZ1XTM37C5X11SQTDNCTM1", &models.LinkedInConnection{})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
