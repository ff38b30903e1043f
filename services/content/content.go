package content

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"socialcatalyst/core"
	"socialcatalyst/db"
	"socialcatalyst/models"
	"socialcatalyst/services"
)

type ContentService struct {
	contentRepo *db.PostgresContentRepository
}

func NewContentService(repo *db.PostgresContentRepository) *ContentService {
	return &ContentService{contentRepo: repo}
}

func (s *ContentService) CreateContent(
	ctx context.Context,
	params services.CreateContentParams,
) (*models.Content, error) {
	log.Printf("📋 Starting to create content with title: %s", params.Title)

	if params.Title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if params.CreatedBy == "" {
		return nil, fmt.Errorf("created_by cannot be empty")
	}

	content := &models.Content{
		ID:          core.NewID("c"),
		Title:       params.Title,
		Description: params.Description,
		Type:        params.Type,
		Category:    params.Category,
		Tags:        params.Tags,
		IsApproved:  false,
		CreatedBy:   params.CreatedBy,
	}

	if err := s.contentRepo.CreateContent(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	log.Printf("📋 Completed successfully - created content with ID: %s", content.ID)
	return content, nil
}

func (s *ContentService) GetContentByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Content], error) {
	log.Printf("📋 Starting to get content by ID: %s", id)

	if !core.IsValidULID(id) {
		return mo.None[*models.Content](), fmt.Errorf("content ID must be a valid ULID")
	}

	maybeContent, err := s.contentRepo.GetContentByID(ctx, id)
	if err != nil {
		return mo.None[*models.Content](), fmt.Errorf("failed to get content by ID: %w", err)
	}

	log.Printf("📋 Completed successfully - content lookup for ID: %s, found: %t", id, maybeContent.IsPresent())
	return maybeContent, nil
}

func (s *ContentService) ListContent(ctx context.Context, approvedOnly bool) ([]*models.Content, error) {
	log.Printf("📋 Starting to list content, approvedOnly: %t", approvedOnly)

	contents, err := s.contentRepo.ListContent(ctx, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	log.Printf("📋 Completed successfully - listed %d content items", len(contents))
	return contents, nil
}

func (s *ContentService) ApproveContent(ctx context.Context, contentID, approvedBy string) error {
	log.Printf("📋 Starting to approve content: %s by: %s", contentID, approvedBy)

	if !core.IsValidULID(contentID) {
		return fmt.Errorf("content ID must be a valid ULID")
	}
	if approvedBy == "" {
		return fmt.Errorf("approved_by cannot be empty")
	}

	if err := s.contentRepo.ApproveContent(ctx, contentID, approvedBy); err != nil {
		return fmt.Errorf("failed to approve content: %w", err)
	}

	log.Printf("📋 Completed successfully - approved content: %s", contentID)
	return nil
}

func (s *ContentService) RecordShareIncrement(ctx context.Context, contentID string) error {
	log.Printf("📋 Starting to record share increment for content: %s", contentID)

	if !core.IsValidULID(contentID) {
		return fmt.Errorf("content ID must be a valid ULID")
	}

	if err := s.contentRepo.RecordShareIncrement(ctx, contentID); err != nil {
		return fmt.Errorf("failed to record share increment: %w", err)
	}

	log.Printf("📋 Completed successfully - recorded share increment for content: %s", contentID)
	return nil
}

// AddEngagement accumulates reported engagements and reach onto the content's
// performance totals.
func (s *ContentService) AddEngagement(ctx context.Context, contentID string, engagements, reach int) error {
	log.Printf("📋 Starting to add engagement for content: %s", contentID)

	if !core.IsValidULID(contentID) {
		return fmt.Errorf("content ID must be a valid ULID")
	}

	if err := s.contentRepo.AddEngagement(ctx, contentID, engagements, reach); err != nil {
		return fmt.Errorf("failed to add engagement: %w", err)
	}

	log.Printf("📋 Completed successfully - added engagement for content: %s", contentID)
	return nil
}
