package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	dbtx "socialcatalyst/db/tx"
	"socialcatalyst/models"
)

type PostgresContentRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for contents table
var contentColumns = []string{
	"id",
	"title",
	"description",
	"type",
	"category",
	"tags",
	"is_approved",
	"approved_by",
	"approved_at",
	"total_shares",
	"total_engagements",
	"total_reach",
	"created_by",
	"created_at",
	"updated_at",
}

func NewPostgresContentRepository(db *sqlx.DB, schema string) *PostgresContentRepository {
	return &PostgresContentRepository{db: db, schema: schema}
}

func (r *PostgresContentRepository) CreateContent(ctx context.Context, content *models.Content) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s.contents (
			id, title, description, type, category, tags,
			is_approved, approved_by, approved_at,
			total_shares, total_engagements, total_reach,
			created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`, r.schema)

	_, err := db.ExecContext(ctx, query,
		content.ID,
		content.Title,
		content.Description,
		content.Type,
		content.Category,
		pq.Array(content.Tags),
		content.IsApproved,
		content.ApprovedBy,
		content.ApprovedAt,
		content.TotalShares,
		content.TotalEngagements,
		content.TotalReach,
		content.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	return nil
}

func (r *PostgresContentRepository) GetContentByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Content], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(contentColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.contents 
		WHERE id = $1`, returningStr, r.schema)

	content := &models.Content{}
	err := db.QueryRowxContext(ctx, query, id).StructScan(content)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.Content](), nil
		}
		return mo.None[*models.Content](), fmt.Errorf("failed to get content by ID: %w", err)
	}

	return mo.Some(content), nil
}

func (r *PostgresContentRepository) ListContent(
	ctx context.Context,
	approvedOnly bool,
) ([]*models.Content, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(contentColumns, ", ")
	whereClause := ""
	if approvedOnly {
		whereClause = "WHERE is_approved = TRUE"
	}

	query := fmt.Sprintf(`
		SELECT %s 
		FROM %s.contents 
		%s
		ORDER BY created_at DESC`, returningStr, r.schema, whereClause)

	contents := []*models.Content{}
	if err := db.SelectContext(ctx, &contents, query); err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	return contents, nil
}

func (r *PostgresContentRepository) ApproveContent(
	ctx context.Context,
	contentID, approvedBy string,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.contents 
		SET is_approved = TRUE,
			approved_by = $2,
			approved_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`, r.schema)

	result, err := db.ExecContext(ctx, query, contentID, approvedBy)
	if err != nil {
		return fmt.Errorf("failed to approve content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("content not found: %s", contentID)
	}

	return nil
}

// RecordShareIncrement bumps the content's share counter after a confirmed
// external post.
func (r *PostgresContentRepository) RecordShareIncrement(ctx context.Context, contentID string) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.contents 
		SET total_shares = total_shares + 1,
			updated_at = NOW()
		WHERE id = $1`, r.schema)

	result, err := db.ExecContext(ctx, query, contentID)
	if err != nil {
		return fmt.Errorf("failed to record share increment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("content not found: %s", contentID)
	}

	return nil
}

// AddEngagement accumulates reported engagements and reach onto the content's
// performance totals. Deltas may be negative when a sync corrects counters
// downward.
func (r *PostgresContentRepository) AddEngagement(
	ctx context.Context,
	contentID string,
	engagements, reach int,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.contents 
		SET total_engagements = total_engagements + $2,
			total_reach = total_reach + $3,
			updated_at = NOW()
		WHERE id = $1`, r.schema)

	result, err := db.ExecContext(ctx, query, contentID, engagements, reach)
	if err != nil {
		return fmt.Errorf("failed to add engagement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("content not found: %s", contentID)
	}

	return nil
}
