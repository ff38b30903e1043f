package models

import (
	"time"

	"github.com/lib/pq"
)

type EmployeeRole string

const (
	EmployeeRoleEmployee EmployeeRole = "employee"
	EmployeeRoleAdmin    EmployeeRole = "admin"
)

// PointsPerLevel is the number of advocacy points needed to advance a level.
const PointsPerLevel = 100

type Employee struct {
	ID           string       `db:"id"            json:"id"`
	EmployeeCode string       `db:"employee_code" json:"employee_code"`
	FirstName    string       `db:"first_name"    json:"first_name"`
	LastName     string       `db:"last_name"     json:"last_name"`
	Email        string       `db:"email"         json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	Role         EmployeeRole `db:"role"          json:"role"`
	Department   string       `db:"department"    json:"department"`
	TotalPoints  int          `db:"total_points"  json:"total_points"`
	Level        int          `db:"level"         json:"level"`

	LinkedInConnection

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// LinkedInConnection is the per-employee LinkedIn OAuth link, embedded in the
// employee record. Exactly one connection exists per employee; reconnecting
// replaces it wholesale.
type LinkedInConnection struct {
	LinkedInConnected    bool           `db:"linkedin_is_connected"  json:"linkedin_is_connected"`
	LinkedInProfileID    string         `db:"linkedin_profile_id"    json:"linkedin_profile_id"`
	LinkedInProfileURL   string         `db:"linkedin_profile_url"   json:"linkedin_profile_url"`
	LinkedInAccessToken  string         `db:"linkedin_access_token"  json:"-"`
	LinkedInRefreshToken string         `db:"linkedin_refresh_token" json:"-"`
	LinkedInTokenExpiry  *time.Time     `db:"linkedin_token_expiry"  json:"linkedin_token_expiry,omitempty"`
	LinkedInPermissions  pq.StringArray `db:"linkedin_permissions"   json:"linkedin_permissions,omitempty"`
	LinkedInLastSync     *time.Time     `db:"linkedin_last_sync"     json:"linkedin_last_sync,omitempty"`
}

// Identity returns the tagged profile identity stored on the connection.
func (c *LinkedInConnection) Identity() Identity {
	return ParseIdentity(c.LinkedInProfileID)
}

// IsHealthy reports whether the connection is fully established: connected,
// holding an access token, and carrying a provider-resolved profile identity.
// A healthy connection is never overwritten by a duplicate callback delivery.
func (c *LinkedInConnection) IsHealthy() bool {
	return c.LinkedInConnected &&
		c.LinkedInAccessToken != "" &&
		c.LinkedInProfileID != "" &&
		c.Identity().IsResolved()
}

// Clear resets every connection field. Disconnect is total.
func (c *LinkedInConnection) Clear() {
	*c = LinkedInConnection{}
}

// FullName returns the employee's display name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// IsAdmin reports whether the employee has the admin role.
func (e *Employee) IsAdmin() bool {
	return e.Role == EmployeeRoleAdmin
}
