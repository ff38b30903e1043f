package advocacy

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"socialcatalyst/models"
	"socialcatalyst/services"
)

// MockAdvocacyService is a mock implementation of the AdvocacyService interface
type MockAdvocacyService struct {
	mock.Mock
}

func (m *MockAdvocacyService) CreateShareRecord(
	ctx context.Context,
	params services.CreateShareRecordParams,
) (*models.AdvocacyRecord, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdvocacyRecord), args.Error(1)
}

func (m *MockAdvocacyService) GetRecentSuccessfulShare(
	ctx context.Context,
	employeeID, contentID, platform string,
	since time.Time,
) (mo.Option[*models.AdvocacyRecord], error) {
	args := m.Called(ctx, employeeID, contentID, platform, since)
	return args.Get(0).(mo.Option[*models.AdvocacyRecord]), args.Error(1)
}

func (m *MockAdvocacyService) ListSharesByEmployee(
	ctx context.Context,
	employeeID, platform string,
	limit int,
) ([]*models.AdvocacyRecord, error) {
	args := m.Called(ctx, employeeID, platform, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AdvocacyRecord), args.Error(1)
}

func (m *MockAdvocacyService) GetShareRecordByID(
	ctx context.Context,
	recordID string,
) (mo.Option[*models.AdvocacyRecord], error) {
	args := m.Called(ctx, recordID)
	return args.Get(0).(mo.Option[*models.AdvocacyRecord]), args.Error(1)
}

func (m *MockAdvocacyService) UpdateEngagement(
	ctx context.Context,
	recordID string,
	likes, comments, shares, clicks int,
) error {
	args := m.Called(ctx, recordID, likes, comments, shares, clicks)
	return args.Error(0)
}
