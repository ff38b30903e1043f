package models

import (
	"time"

	"github.com/lib/pq"
)

type Content struct {
	ID          string         `db:"id"          json:"id"`
	Title       string         `db:"title"       json:"title"`
	Description string         `db:"description" json:"description"`
	Type        string         `db:"type"        json:"type"`
	Category    string         `db:"category"    json:"category"`
	Tags        pq.StringArray `db:"tags"        json:"tags"`

	IsApproved bool       `db:"is_approved" json:"is_approved"`
	ApprovedBy *string    `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `db:"approved_at" json:"approved_at,omitempty"`

	TotalShares      int `db:"total_shares"      json:"total_shares"`
	TotalEngagements int `db:"total_engagements" json:"total_engagements"`
	TotalReach       int `db:"total_reach"       json:"total_reach"`

	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
