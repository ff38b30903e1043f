package api

import (
	"time"

	"socialcatalyst/models"
)

// EmployeeModel represents the employee data returned by the API.
// Credentials and raw OAuth tokens are never exposed.
type EmployeeModel struct {
	ID           string    `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	TotalPoints  int       `json:"total_points"`
	Level        int       `json:"level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LinkedInStatusModel represents the non-secret connection fields returned by
// the status endpoint.
type LinkedInStatusModel struct {
	IsConnected      bool       `json:"is_connected"`
	ProfileID        string     `json:"profile_id,omitempty"`
	ProfileURL       string     `json:"profile_url,omitempty"`
	IdentityResolved bool       `json:"identity_resolved"`
	Permissions      []string   `json:"permissions,omitempty"`
	TokenExpiry      *time.Time `json:"token_expiry,omitempty"`
	LastSync         *time.Time `json:"last_sync,omitempty"`
}

// ContentModel represents the content data returned by the API
type ContentModel struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	IsApproved  bool       `json:"is_approved"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	TotalShares int        `json:"total_shares"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AdvocacyRecordModel represents a share record returned by the API
type AdvocacyRecordModel struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	ContentID       string    `json:"content_id"`
	Platform        string    `json:"platform"`
	ShareText       string    `json:"share_text"`
	ExternalPostID  string    `json:"external_post_id"`
	ExternalPostURL string    `json:"external_post_url"`
	PointsAwarded   int       `json:"points_awarded"`
	CreatedAt       time.Time `json:"created_at"`
}

// DomainEmployeeToAPIEmployee converts a domain Employee model to an API EmployeeModel
func DomainEmployeeToAPIEmployee(employee *models.Employee) *EmployeeModel {
	if employee == nil {
		return nil
	}

	return &EmployeeModel{
		ID:           employee.ID,
		EmployeeCode: employee.EmployeeCode,
		FirstName:    employee.FirstName,
		LastName:     employee.LastName,
		Email:        employee.Email,
		Role:         string(employee.Role),
		Department:   employee.Department,
		TotalPoints:  employee.TotalPoints,
		Level:        employee.Level,
		CreatedAt:    employee.CreatedAt,
		UpdatedAt:    employee.UpdatedAt,
	}
}

// DomainEmployeesToAPIEmployees converts a slice of domain Employee models
func DomainEmployeesToAPIEmployees(employees []*models.Employee) []*EmployeeModel {
	apiEmployees := make([]*EmployeeModel, 0, len(employees))
	for _, employee := range employees {
		apiEmployees = append(apiEmployees, DomainEmployeeToAPIEmployee(employee))
	}
	return apiEmployees
}

// DomainConnectionToAPIStatus converts the embedded connection to the status
// model exposed by the API. Tokens are deliberately omitted.
func DomainConnectionToAPIStatus(conn *models.LinkedInConnection) *LinkedInStatusModel {
	if conn == nil {
		return nil
	}

	return &LinkedInStatusModel{
		IsConnected:      conn.LinkedInConnected,
		ProfileID:        conn.LinkedInProfileID,
		ProfileURL:       conn.LinkedInProfileURL,
		IdentityResolved: conn.LinkedInProfileID != "" && conn.Identity().IsResolved(),
		Permissions:      conn.LinkedInPermissions,
		TokenExpiry:      conn.LinkedInTokenExpiry,
		LastSync:         conn.LinkedInLastSync,
	}
}

// DomainContentToAPIContent converts a domain Content model to an API ContentModel
func DomainContentToAPIContent(content *models.Content) *ContentModel {
	if content == nil {
		return nil
	}

	return &ContentModel{
		ID:          content.ID,
		Title:       content.Title,
		Description: content.Description,
		Type:        content.Type,
		Category:    content.Category,
		Tags:        content.Tags,
		IsApproved:  content.IsApproved,
		ApprovedAt:  content.ApprovedAt,
		TotalShares: content.TotalShares,
		CreatedBy:   content.CreatedBy,
		CreatedAt:   content.CreatedAt,
		UpdatedAt:   content.UpdatedAt,
	}
}

// DomainContentsToAPIContents converts a slice of domain Content models
func DomainContentsToAPIContents(contents []*models.Content) []*ContentModel {
	apiContents := make([]*ContentModel, 0, len(contents))
	for _, content := range contents {
		apiContents = append(apiContents, DomainContentToAPIContent(content))
	}
	return apiContents
}

// DomainAdvocacyRecordToAPIAdvocacyRecord converts a domain AdvocacyRecord to its API model
func DomainAdvocacyRecordToAPIAdvocacyRecord(record *models.AdvocacyRecord) *AdvocacyRecordModel {
	if record == nil {
		return nil
	}

	return &AdvocacyRecordModel{
		ID:              record.ID,
		EmployeeID:      record.EmployeeID,
		ContentID:       record.ContentID,
		Platform:        record.Platform,
		ShareText:       record.ShareText,
		ExternalPostID:  record.ExternalPostID,
		ExternalPostURL: record.ExternalPostURL,
		PointsAwarded:   record.PointsAwarded,
		CreatedAt:       record.CreatedAt,
	}
}

// DomainAdvocacyRecordsToAPIAdvocacyRecords converts a slice of domain AdvocacyRecords
func DomainAdvocacyRecordsToAPIAdvocacyRecords(records []*models.AdvocacyRecord) []*AdvocacyRecordModel {
	apiRecords := make([]*AdvocacyRecordModel, 0, len(records))
	for _, record := range records {
		apiRecords = append(apiRecords, DomainAdvocacyRecordToAPIAdvocacyRecord(record))
	}
	return apiRecords
}
