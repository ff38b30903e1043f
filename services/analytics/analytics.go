package analytics

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"socialcatalyst/models"
	"socialcatalyst/services"
)

// AnalyticsService computes aggregate advocacy reporting on top of the
// employee and content services.
type AnalyticsService struct {
	employeesService services.EmployeesService
	contentService   services.ContentService
}

func NewAnalyticsService(
	employeesService services.EmployeesService,
	contentService services.ContentService,
) *AnalyticsService {
	return &AnalyticsService{
		employeesService: employeesService,
		contentService:   contentService,
	}
}

func (s *AnalyticsService) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	log.Printf("📋 Starting to build leaderboard with limit: %d", limit)

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	employees, err := s.employeesService.ListTopEmployees(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top employees: %w", err)
	}

	entries := make([]*models.LeaderboardEntry, 0, len(employees))
	for i, employee := range employees {
		entries = append(entries, &models.LeaderboardEntry{
			Rank:        i + 1,
			EmployeeID:  employee.ID,
			FullName:    employee.FullName(),
			Department:  employee.Department,
			TotalPoints: employee.TotalPoints,
			Level:       employee.Level,
		})
	}

	log.Printf("📋 Completed successfully - built leaderboard with %d entries", len(entries))
	return entries, nil
}

// GetContentPerformance reports per-content share outcomes with the
// engagement rate as a percentage of reach, rounded to two decimal places.
func (s *AnalyticsService) GetContentPerformance(ctx context.Context) ([]*models.ContentPerformance, error) {
	log.Printf("📋 Starting to build content performance report")

	contents, err := s.contentService.ListContent(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	report := make([]*models.ContentPerformance, 0, len(contents))
	for _, content := range contents {
		rate := decimal.Zero
		if content.TotalReach > 0 {
			rate = decimal.NewFromInt(int64(content.TotalEngagements)).
				Div(decimal.NewFromInt(int64(content.TotalReach))).
				Mul(hundred).
				Round(2)
		}

		report = append(report, &models.ContentPerformance{
			ContentID:        content.ID,
			Title:            content.Title,
			Category:         content.Category,
			TotalShares:      content.TotalShares,
			TotalEngagements: content.TotalEngagements,
			TotalReach:       content.TotalReach,
			EngagementRate:   rate,
		})
	}

	log.Printf("📋 Completed successfully - built content performance report with %d entries", len(report))
	return report, nil
}
