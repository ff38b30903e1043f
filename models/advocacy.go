package models

import (
	"time"
)

const PlatformLinkedIn = "linkedin"

// SharePointValue is the fixed number of points awarded for a confirmed share.
const SharePointValue = 25

// AdvocacyRecord records one confirmed content post to a social platform.
// A record is only created after the provider confirms creation of a post.
type AdvocacyRecord struct {
	ID         string `db:"id"          json:"id"`
	EmployeeID string `db:"employee_id" json:"employee_id"`
	ContentID  string `db:"content_id"  json:"content_id"`
	Platform   string `db:"platform"    json:"platform"`

	ShareText       string `db:"share_text"        json:"share_text"`
	ExternalPostID  string `db:"external_post_id"  json:"external_post_id"`
	ExternalPostURL string `db:"external_post_url" json:"external_post_url"`
	PointsAwarded   int    `db:"points_awarded"    json:"points_awarded"`

	Likes    int `db:"likes"    json:"likes"`
	Comments int `db:"comments" json:"comments"`
	Shares   int `db:"shares"   json:"shares"`
	Clicks   int `db:"clicks"   json:"clicks"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsSuccessful reports whether the share recorded a real external post URL.
// Only successful shares count toward the sharing cooldown.
func (a *AdvocacyRecord) IsSuccessful() bool {
	return a.ExternalPostURL != ""
}
