package advocacy

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samber/mo"

	"socialcatalyst/core"
	"socialcatalyst/db"
	"socialcatalyst/models"
	"socialcatalyst/services"
)

type AdvocacyService struct {
	advocacyRepo *db.PostgresAdvocacyRepository
}

func NewAdvocacyService(repo *db.PostgresAdvocacyRepository) *AdvocacyService {
	return &AdvocacyService{advocacyRepo: repo}
}

// CreateShareRecord persists a confirmed share. Callers only invoke this
// after the platform confirmed post creation with a real post ID.
func (s *AdvocacyService) CreateShareRecord(
	ctx context.Context,
	params services.CreateShareRecordParams,
) (*models.AdvocacyRecord, error) {
	log.Printf("📋 Starting to create share record for employee: %s, content: %s", params.EmployeeID, params.ContentID)

	if !core.IsValidULID(params.EmployeeID) {
		return nil, fmt.Errorf("employee ID must be a valid ULID")
	}
	if !core.IsValidULID(params.ContentID) {
		return nil, fmt.Errorf("content ID must be a valid ULID")
	}
	if params.Platform == "" {
		return nil, fmt.Errorf("platform cannot be empty")
	}
	if params.ExternalPostID == "" {
		return nil, fmt.Errorf("external_post_id cannot be empty")
	}

	record := &models.AdvocacyRecord{
		ID:              core.NewID("a"),
		EmployeeID:      params.EmployeeID,
		ContentID:       params.ContentID,
		Platform:        params.Platform,
		ShareText:       params.ShareText,
		ExternalPostID:  params.ExternalPostID,
		ExternalPostURL: params.ExternalPostURL,
		PointsAwarded:   params.PointsAwarded,
	}

	if err := s.advocacyRepo.CreateAdvocacyRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create share record: %w", err)
	}

	log.Printf("📋 Completed successfully - created share record with ID: %s", record.ID)
	return record, nil
}

func (s *AdvocacyService) GetRecentSuccessfulShare(
	ctx context.Context,
	employeeID, contentID, platform string,
	since time.Time,
) (mo.Option[*models.AdvocacyRecord], error) {
	log.Printf("📋 Starting to look up recent successful share for employee: %s, content: %s", employeeID, contentID)

	if !core.IsValidULID(employeeID) {
		return mo.None[*models.AdvocacyRecord](), fmt.Errorf("employee ID must be a valid ULID")
	}
	if !core.IsValidULID(contentID) {
		return mo.None[*models.AdvocacyRecord](), fmt.Errorf("content ID must be a valid ULID")
	}

	maybeRecord, err := s.advocacyRepo.GetRecentSuccessfulShare(ctx, employeeID, contentID, platform, since)
	if err != nil {
		return mo.None[*models.AdvocacyRecord](), fmt.Errorf("failed to get recent successful share: %w", err)
	}

	log.Printf("📋 Completed successfully - recent share lookup, found: %t", maybeRecord.IsPresent())
	return maybeRecord, nil
}

func (s *AdvocacyService) ListSharesByEmployee(
	ctx context.Context,
	employeeID, platform string,
	limit int,
) ([]*models.AdvocacyRecord, error) {
	log.Printf("📋 Starting to list shares for employee: %s", employeeID)

	if !core.IsValidULID(employeeID) {
		return nil, fmt.Errorf("employee ID must be a valid ULID")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	records, err := s.advocacyRepo.ListAdvocacyRecordsByEmployee(ctx, employeeID, platform, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}

	log.Printf("📋 Completed successfully - listed %d shares for employee: %s", len(records), employeeID)
	return records, nil
}

func (s *AdvocacyService) GetShareRecordByID(
	ctx context.Context,
	recordID string,
) (mo.Option[*models.AdvocacyRecord], error) {
	log.Printf("📋 Starting to get share record: %s", recordID)

	if !core.IsValidULID(recordID) {
		return mo.None[*models.AdvocacyRecord](), fmt.Errorf("record ID must be a valid ULID")
	}

	maybeRecord, err := s.advocacyRepo.GetAdvocacyRecordByID(ctx, recordID)
	if err != nil {
		return mo.None[*models.AdvocacyRecord](), fmt.Errorf("failed to get share record: %w", err)
	}

	log.Printf("📋 Completed successfully - share record lookup, found: %t", maybeRecord.IsPresent())
	return maybeRecord, nil
}

// UpdateEngagement replaces the record's engagement counters with the values
// reported by the platform. Counters are absolute, not increments.
func (s *AdvocacyService) UpdateEngagement(
	ctx context.Context,
	recordID string,
	likes, comments, shares, clicks int,
) error {
	log.Printf("📋 Starting to update engagement for share record: %s", recordID)

	if !core.IsValidULID(recordID) {
		return fmt.Errorf("record ID must be a valid ULID")
	}
	if likes < 0 || comments < 0 || shares < 0 || clicks < 0 {
		return fmt.Errorf("engagement counters cannot be negative")
	}

	if err := s.advocacyRepo.UpdateEngagement(ctx, recordID, likes, comments, shares, clicks); err != nil {
		return fmt.Errorf("failed to update engagement: %w", err)
	}

	log.Printf("📋 Completed successfully - updated engagement for share record: %s", recordID)
	return nil
}
