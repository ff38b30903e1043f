package models

import (
	"github.com/shopspring/decimal"
)

// LeaderboardEntry is one row of the organization advocacy leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	EmployeeID  string `json:"employee_id"`
	FullName    string `json:"full_name"`
	Department  string `json:"department"`
	TotalPoints int    `json:"total_points"`
	Level       int    `json:"level"`
}

// ContentPerformance aggregates per-content sharing outcomes. EngagementRate
// is engagements per unit of reach expressed as a percentage.
type ContentPerformance struct {
	ContentID        string          `json:"content_id"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	TotalShares      int             `json:"total_shares"`
	TotalEngagements int             `json:"total_engagements"`
	TotalReach       int             `json:"total_reach"`
	EngagementRate   decimal.Decimal `json:"engagement_rate"`
}
