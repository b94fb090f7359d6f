package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SeedGrant is one catalog entry to load, keyed by slug.
type SeedGrant struct {
	Name               string
	Slug               string
	ShortDescription   string
	LongDescription    string
	Category           string
	MaxAmount          *float64
	AmountDescription  string
	SourceOrganisation string
	SourceURL          string
	ApplicationURL     string
}

type SeedRule struct {
	RuleGroup   int
	Field       string
	Operator    string
	Value       string
	Description string
	IsMandatory bool
	SortOrder   int
}

// SeedRepository loads catalog data. Reseeding is idempotent: grants are
// upserted by slug and their rules replaced.
type SeedRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSeedRepository(db *pgxpool.Pool, logger *zap.Logger) *SeedRepository {
	return &SeedRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SeedRepository) Upsert(ctx context.Context, grant SeedGrant, rules []SeedRule, now time.Time) error {
	insert := squirrel.Insert("grants").
		Columns(
			"id", "name", "slug", "short_description", "long_description", "category",
			"max_amount", "amount_description", "source_organisation", "source_url",
			"application_url", "is_active", "created_at", "updated_at",
		).
		Values(
			uuid.New(), grant.Name, grant.Slug, grant.ShortDescription, grant.LongDescription,
			grant.Category, grant.MaxAmount, grant.AmountDescription, grant.SourceOrganisation,
			grant.SourceURL, grant.ApplicationURL, true, now, now,
		).
		Suffix(`ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			short_description = EXCLUDED.short_description,
			long_description = EXCLUDED.long_description,
			category = EXCLUDED.category,
			max_amount = EXCLUDED.max_amount,
			amount_description = EXCLUDED.amount_description,
			source_organisation = EXCLUDED.source_organisation,
			source_url = EXCLUDED.source_url,
			application_url = EXCLUDED.application_url,
			is_active = TRUE,
			updated_at = EXCLUDED.updated_at
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := insert.ToSql()
	if err != nil {
		return err
	}

	var grantID uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&grantID); err != nil {
		return err
	}

	deleteRules := squirrel.Delete("eligibility_rules").
		Where(squirrel.Eq{"grant_id": grantID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = deleteRules.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(rules) == 0 {
		return nil
	}

	builder := squirrel.Insert("eligibility_rules").
		Columns("id", "grant_id", "rule_group", "field", "operator", "value", "description", "is_mandatory", "sort_order").
		PlaceholderFormat(squirrel.Dollar)

	for _, rule := range rules {
		builder = builder.Values(
			uuid.New(), grantID, rule.RuleGroup, rule.Field, rule.Operator,
			rule.Value, rule.Description, rule.IsMandatory, rule.SortOrder,
		)
	}

	sql, args, err = builder.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
