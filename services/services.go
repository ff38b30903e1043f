package services

import (
	"context"
	"time"

	"github.com/samber/mo"

	"socialcatalyst/models"
)

// EmployeesService defines the interface for employee-related operations
type EmployeesService interface {
	CreateEmployee(ctx context.Context, params CreateEmployeeParams) (*models.Employee, error)
	GetEmployeeByID(ctx context.Context, id string) (mo.Option[*models.Employee], error)
	GetEmployeeByEmail(ctx context.Context, email string) (mo.Option[*models.Employee], error)
	GetEmployeeByEmailOrCode(ctx context.Context, email, employeeCode string) (mo.Option[*models.Employee], error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	ListTopEmployees(ctx context.Context, limit int) ([]*models.Employee, error)
	UpdateLinkedInConnection(ctx context.Context, employeeID string, conn *models.LinkedInConnection) error
	AddPoints(ctx context.Context, employeeID string, points int) error
	UpdateEmployeeProfile(ctx context.Context, employeeID, firstName, lastName, department string) error
}

// CreateEmployeeParams carries the fields needed to register a new employee.
// PasswordHash must already be hashed by the caller.
type CreateEmployeeParams struct {
	EmployeeCode string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         models.EmployeeRole
	Department   string
}

// ContentService defines the interface for advocacy content operations
type ContentService interface {
	CreateContent(ctx context.Context, params CreateContentParams) (*models.Content, error)
	GetContentByID(ctx context.Context, id string) (mo.Option[*models.Content], error)
	ListContent(ctx context.Context, approvedOnly bool) ([]*models.Content, error)
	ApproveContent(ctx context.Context, contentID, approvedBy string) error
	RecordShareIncrement(ctx context.Context, contentID string) error
	AddEngagement(ctx context.Context, contentID string, engagements, reach int) error
}

// CreateContentParams carries the fields needed to create a content item.
type CreateContentParams struct {
	Title       string
	Description string
	Type        string
	Category    string
	Tags        []string
	CreatedBy   string
}

// AdvocacyService defines the interface for share record operations
type AdvocacyService interface {
	CreateShareRecord(ctx context.Context, params CreateShareRecordParams) (*models.AdvocacyRecord, error)
	GetShareRecordByID(ctx context.Context, recordID string) (mo.Option[*models.AdvocacyRecord], error)
	GetRecentSuccessfulShare(
		ctx context.Context,
		employeeID, contentID, platform string,
		since time.Time,
	) (mo.Option[*models.AdvocacyRecord], error)
	ListSharesByEmployee(ctx context.Context, employeeID, platform string, limit int) ([]*models.AdvocacyRecord, error)
	UpdateEngagement(ctx context.Context, recordID string, likes, comments, shares, clicks int) error
}

// CreateShareRecordParams carries the fields of a confirmed share.
type CreateShareRecordParams struct {
	EmployeeID      string
	ContentID       string
	Platform        string
	ShareText       string
	ExternalPostID  string
	ExternalPostURL string
	PointsAwarded   int
}

// AnalyticsService defines the interface for aggregate reporting operations
type AnalyticsService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
	GetContentPerformance(ctx context.Context) ([]*models.ContentPerformance, error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
	BeginTransaction(ctx context.Context) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}
