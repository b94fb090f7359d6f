package repository

import (
	"context"

	"grantscan/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ScanRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewScanRepository(db *pgxpool.Pool, logger *zap.Logger) *ScanRepository {
	return &ScanRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists one scan run and its ranked grant rows.
func (r *ScanRepository) Create(ctx context.Context, scan *models.ScanResult, grants []*models.ScanResultGrant) error {
	query := squirrel.Insert("scan_results").
		Columns("id", "total_grants", "total_value", "created_at").
		Values(scan.ID, scan.TotalGrants, scan.TotalValue, scan.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(grants) == 0 {
		return nil
	}

	builder := squirrel.Insert("scan_result_grants").
		Columns("id", "scan_result_id", "grant_id", "match_type", "match_score", "notes", "sort_order").
		PlaceholderFormat(squirrel.Dollar)

	for _, g := range grants {
		builder = builder.Values(g.ID, g.ScanResultID, g.GrantID, g.MatchType, g.MatchScore, g.Notes, g.SortOrder)
	}

	sql, args, err = builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// GetByID loads one scan, or nil when it does not exist.
func (r *ScanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScanResult, error) {
	query := squirrel.Select("id", "total_grants", "total_value", "created_at").
		From("scan_results").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var scan models.ScanResult
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&scan.ID, &scan.TotalGrants, &scan.TotalValue, &scan.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

// ListGrants loads the ranked grant rows of one scan together with the
// matched grants, in stored ranking order.
func (r *ScanRepository) ListGrants(ctx context.Context, scanID uuid.UUID) ([]*models.ScanResultGrant, []*models.Grant, error) {
	columns := []string{
		"sg.id", "sg.scan_result_id", "sg.grant_id", "sg.match_type",
		"sg.match_score", "sg.notes", "sg.sort_order",
		"g.id", "g.name", "g.slug", "g.short_description", "g.long_description",
		"g.category", "g.max_amount", "g.amount_description",
		"g.source_organisation", "g.source_url", "g.application_url",
		"g.is_active", "g.created_at", "g.updated_at",
	}
	query := squirrel.Select(columns...).
		From("scan_result_grants sg").
		Join("grants g ON g.id = sg.grant_id").
		Where(squirrel.Eq{"sg.scan_result_id": scanID}).
		OrderBy("sg.sort_order").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var matches []*models.ScanResultGrant
	var grants []*models.Grant
	for rows.Next() {
		var match models.ScanResultGrant
		var grant models.Grant
		if err := rows.Scan(
			&match.ID, &match.ScanResultID, &match.GrantID, &match.MatchType,
			&match.MatchScore, &match.Notes, &match.SortOrder,
			&grant.ID, &grant.Name, &grant.Slug, &grant.ShortDescription,
			&grant.LongDescription, &grant.Category, &grant.MaxAmount,
			&grant.AmountDescription, &grant.SourceOrganisation, &grant.SourceURL,
			&grant.ApplicationURL, &grant.IsActive, &grant.CreatedAt, &grant.UpdatedAt,
		); err != nil {
			return nil, nil, err
		}
		matches = append(matches, &match)
		grants = append(grants, &grant)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return matches, grants, nil
}
