package analytics

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialcatalyst/models"
)

// MockAnalyticsService is a mock implementation of the AnalyticsService interface
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

func (m *MockAnalyticsService) GetContentPerformance(ctx context.Context) ([]*models.ContentPerformance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentPerformance), args.Error(1)
}
