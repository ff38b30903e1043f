package content

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"socialcatalyst/models"
	"socialcatalyst/services"
)

// MockContentService is a mock implementation of the ContentService interface
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) CreateContent(
	ctx context.Context,
	params services.CreateContentParams,
) (*models.Content, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Content), args.Error(1)
}

func (m *MockContentService) GetContentByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Content], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Content]), args.Error(1)
}

func (m *MockContentService) ListContent(ctx context.Context, approvedOnly bool) ([]*models.Content, error) {
	args := m.Called(ctx, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Content), args.Error(1)
}

func (m *MockContentService) ApproveContent(ctx context.Context, contentID, approvedBy string) error {
	args := m.Called(ctx, contentID, approvedBy)
	return args.Error(0)
}

func (m *MockContentService) RecordShareIncrement(ctx context.Context, contentID string) error {
	args := m.Called(ctx, contentID)
	return args.Error(0)
}

func (m *MockContentService) AddEngagement(ctx context.Context, contentID string, engagements, reach int) error {
	args := m.Called(ctx, contentID, engagements, reach)
	return args.Error(0)
}
