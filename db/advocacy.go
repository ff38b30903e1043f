package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	dbtx "socialcatalyst/db/tx"
	"socialcatalyst/models"
)

type PostgresAdvocacyRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for advocacy_records table
var advocacyColumns = []string{
	"id",
	"employee_id",
	"content_id",
	"platform",
	"share_text",
	"external_post_id",
	"external_post_url",
	"points_awarded",
	"likes",
	"comments",
	"shares",
	"clicks",
	"created_at",
	"updated_at",
}

func NewPostgresAdvocacyRepository(db *sqlx.DB, schema string) *PostgresAdvocacyRepository {
	return &PostgresAdvocacyRepository{db: db, schema: schema}
}

func (r *PostgresAdvocacyRepository) CreateAdvocacyRecord(
	ctx context.Context,
	record *models.AdvocacyRecord,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s.advocacy_records (
			id, employee_id, content_id, platform,
			share_text, external_post_id, external_post_url, points_awarded,
			likes, comments, shares, clicks,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())`, r.schema)

	_, err := db.ExecContext(ctx, query,
		record.ID,
		record.EmployeeID,
		record.ContentID,
		record.Platform,
		record.ShareText,
		record.ExternalPostID,
		record.ExternalPostURL,
		record.PointsAwarded,
		record.Likes,
		record.Comments,
		record.Shares,
		record.Clicks,
	)
	if err != nil {
		return fmt.Errorf("failed to create advocacy record: %w", err)
	}

	return nil
}

// GetRecentSuccessfulShare finds the most recent share of the given
// employee/content/platform tuple strictly after the given time that recorded
// a real external post URL. The comparison is exclusive so a share created
// exactly at the cooldown boundary no longer counts. Failed or unconfirmed
// attempts never match.
func (r *PostgresAdvocacyRepository) GetRecentSuccessfulShare(
	ctx context.Context,
	employeeID, contentID, platform string,
	since time.Time,
) (mo.Option[*models.AdvocacyRecord], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(advocacyColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.advocacy_records 
		WHERE employee_id = $1 
			AND content_id = $2 
			AND platform = $3 
			AND external_post_url <> ''
			AND created_at > $4
		ORDER BY created_at DESC
		LIMIT 1`, returningStr, r.schema)

	record := &models.AdvocacyRecord{}
	err := db.QueryRowxContext(ctx, query, employeeID, contentID, platform, since).StructScan(record)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.AdvocacyRecord](), nil
		}
		return mo.None[*models.AdvocacyRecord](), fmt.Errorf("failed to get recent successful share: %w", err)
	}

	return mo.Some(record), nil
}

func (r *PostgresAdvocacyRepository) ListAdvocacyRecordsByEmployee(
	ctx context.Context,
	employeeID, platform string,
	limit int,
) ([]*models.AdvocacyRecord, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(advocacyColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.advocacy_records 
		WHERE employee_id = $1 AND platform = $2
		ORDER BY created_at DESC
		LIMIT $3`, returningStr, r.schema)

	records := []*models.AdvocacyRecord{}
	if err := db.SelectContext(ctx, &records, query, employeeID, platform, limit); err != nil {
		return nil, fmt.Errorf("failed to list advocacy records: %w", err)
	}

	return records, nil
}

// ContentShareCount is a per-content aggregate of confirmed shares.
type ContentShareCount struct {
	ContentID  string `db:"content_id"`
	ShareCount int    `db:"share_count"`
}

func (r *PostgresAdvocacyRepository) CountSharesByContent(
	ctx context.Context,
) ([]*ContentShareCount, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT content_id, COUNT(*) AS share_count
		FROM %s.advocacy_records 
		WHERE external_post_url <> ''
		GROUP BY content_id
		ORDER BY share_count DESC`, r.schema)

	counts := []*ContentShareCount{}
	if err := db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count shares by content: %w", err)
	}

	return counts, nil
}

func (r *PostgresAdvocacyRepository) GetAdvocacyRecordByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.AdvocacyRecord], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(advocacyColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.advocacy_records 
		WHERE id = $1`, returningStr, r.schema)

	record := &models.AdvocacyRecord{}
	err := db.QueryRowxContext(ctx, query, id).StructScan(record)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.AdvocacyRecord](), nil
		}
		return mo.None[*models.AdvocacyRecord](), fmt.Errorf("failed to get advocacy record by ID: %w", err)
	}

	return mo.Some(record), nil
}

// UpdateEngagement replaces the record's engagement counters with the values
// reported by the platform.
func (r *PostgresAdvocacyRepository) UpdateEngagement(
	ctx context.Context,
	recordID string,
	likes, comments, shares, clicks int,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.advocacy_records 
		SET likes = $2,
			comments = $3,
			shares = $4,
			clicks = $5,
			updated_at = NOW()
		WHERE id = $1`, r.schema)

	result, err := db.ExecContext(ctx, query, recordID, likes, comments, shares, clicks)
	if err != nil {
		return fmt.Errorf("failed to update engagement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("advocacy record not found: %s", recordID)
	}

	return nil
}
