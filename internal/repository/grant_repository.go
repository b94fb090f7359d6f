package repository

import (
	"context"

	"grantscan/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var grantColumns = []string{
	"id", "name", "slug", "short_description", "long_description", "category",
	"max_amount", "amount_description", "source_organisation", "source_url",
	"application_url", "is_active", "created_at", "updated_at",
}

var ruleColumns = []string{
	"id", "grant_id", "rule_group", "field", "operator", "value",
	"description", "is_mandatory", "sort_order",
}

type GrantRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGrantRepository(db *pgxpool.Pool, logger *zap.Logger) *GrantRepository {
	return &GrantRepository{
		db:     db,
		logger: logger,
	}
}

// ListActive loads every active grant together with its eligibility rules,
// rules ordered by group then catalog order.
func (r *GrantRepository) ListActive(ctx context.Context) ([]*models.Grant, error) {
	query := squirrel.Select(grantColumns...).
		From("grants").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("category", "name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []*models.Grant
	byID := make(map[uuid.UUID]*models.Grant)
	for rows.Next() {
		grant, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant)
		byID[grant.ID] = grant
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(grants) == 0 {
		return grants, nil
	}

	ids := make([]uuid.UUID, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.ID)
	}

	ruleQuery := squirrel.Select(ruleColumns...).
		From("eligibility_rules").
		Where(squirrel.Eq{"grant_id": ids}).
		OrderBy("grant_id", "rule_group", "sort_order").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = ruleQuery.ToSql()
	if err != nil {
		return nil, err
	}

	ruleRows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var rule models.EligibilityRule
		if err := ruleRows.Scan(
			&rule.ID, &rule.GrantID, &rule.RuleGroup, &rule.Field, &rule.Operator,
			&rule.Value, &rule.Description, &rule.IsMandatory, &rule.SortOrder,
		); err != nil {
			return nil, err
		}
		if grant, ok := byID[rule.GrantID]; ok {
			grant.Rules = append(grant.Rules, rule)
		}
	}
	if err := ruleRows.Err(); err != nil {
		return nil, err
	}

	return grants, nil
}

// List returns a page of active grants (without rules), optionally filtered
// by category, plus the unpaged total.
func (r *GrantRepository) List(ctx context.Context, category string, page, perPage int) ([]*models.Grant, int, error) {
	where := squirrel.And{squirrel.Eq{"is_active": true}}
	if category != "" {
		where = append(where, squirrel.Eq{"category": category})
	}

	countQuery := squirrel.Select("COUNT(*)").
		From("grants").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := squirrel.Select(grantColumns...).
		From("grants").
		Where(where).
		OrderBy("category", "name").
		Offset(uint64((page - 1) * perPage)).
		Limit(uint64(perPage)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var grants []*models.Grant
	for rows.Next() {
		grant, err := scanGrant(rows)
		if err != nil {
			return nil, 0, err
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return grants, total, nil
}

// GetBySlug loads one active grant and its rules.
func (r *GrantRepository) GetBySlug(ctx context.Context, slug string) (*models.Grant, error) {
	query := squirrel.Select(grantColumns...).
		From("grants").
		Where(squirrel.Eq{"slug": slug, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	grant, err := scanGrant(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	ruleQuery := squirrel.Select(ruleColumns...).
		From("eligibility_rules").
		Where(squirrel.Eq{"grant_id": grant.ID}).
		OrderBy("rule_group", "sort_order").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = ruleQuery.ToSql()
	if err != nil {
		return nil, err
	}

	ruleRows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var rule models.EligibilityRule
		if err := ruleRows.Scan(
			&rule.ID, &rule.GrantID, &rule.RuleGroup, &rule.Field, &rule.Operator,
			&rule.Value, &rule.Description, &rule.IsMandatory, &rule.SortOrder,
		); err != nil {
			return nil, err
		}
		grant.Rules = append(grant.Rules, rule)
	}
	if err := ruleRows.Err(); err != nil {
		return nil, err
	}

	return grant, nil
}

// CategoryCounts returns the number of active grants per category.
func (r *GrantRepository) CategoryCounts(ctx context.Context) (map[string]int, error) {
	query := squirrel.Select("category", "COUNT(*)").
		From("grants").
		Where(squirrel.Eq{"is_active": true}).
		GroupBy("category").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

type grantScanner interface {
	Scan(dest ...any) error
}

func scanGrant(row grantScanner) (*models.Grant, error) {
	var grant models.Grant
	err := row.Scan(
		&grant.ID, &grant.Name, &grant.Slug, &grant.ShortDescription,
		&grant.LongDescription, &grant.Category, &grant.MaxAmount,
		&grant.AmountDescription, &grant.SourceOrganisation, &grant.SourceURL,
		&grant.ApplicationURL, &grant.IsActive, &grant.CreatedAt, &grant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}
