package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"grantscan/internal/repository"
	"grantscan/pkg/cache"
	"grantscan/pkg/config"
	"grantscan/pkg/logger"
	"grantscan/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// seedGrant mirrors the structure of grants.json.
type seedGrant struct {
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	ShortDescription   string     `json:"short_description"`
	LongDescription    string     `json:"long_description"`
	Category           string     `json:"category"`
	MaxAmount          *float64   `json:"max_amount"`
	AmountDescription  string     `json:"amount_description"`
	SourceOrganisation string     `json:"source_organisation"`
	SourceURL          string     `json:"source_url"`
	ApplicationURL     string     `json:"application_url"`
	EligibilityRules   []seedRule `json:"eligibility_rules"`
}

type seedRule struct {
	RuleGroup   int    `json:"rule_group"`
	Field       string `json:"field"`
	Operator    string `json:"operator"`
	Value       string `json:"value"`
	Description string `json:"description"`
	IsMandatory bool   `json:"is_mandatory"`
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if err := createTables(ctx, db); err != nil {
		appLogger.Fatal("Failed to create tables", zap.Error(err))
	}

	grants, err := loadSeedFile(filepath.Join("cmd", "seed", "grants.json"))
	if err != nil {
		appLogger.Fatal("Failed to load seed file", zap.Error(err))
	}

	seedRepo := repository.NewSeedRepository(db, appLogger)
	now := time.Now().UTC()
	for _, grant := range grants {
		rules := make([]repository.SeedRule, 0, len(grant.EligibilityRules))
		for i, r := range grant.EligibilityRules {
			rules = append(rules, repository.SeedRule{
				RuleGroup:   r.RuleGroup,
				Field:       r.Field,
				Operator:    r.Operator,
				Value:       r.Value,
				Description: r.Description,
				IsMandatory: r.IsMandatory,
				SortOrder:   i,
			})
		}
		err := seedRepo.Upsert(ctx, repository.SeedGrant{
			Name:               grant.Name,
			Slug:               grant.Slug,
			ShortDescription:   grant.ShortDescription,
			LongDescription:    grant.LongDescription,
			Category:           grant.Category,
			MaxAmount:          grant.MaxAmount,
			AmountDescription:  grant.AmountDescription,
			SourceOrganisation: grant.SourceOrganisation,
			SourceURL:          grant.SourceURL,
			ApplicationURL:     grant.ApplicationURL,
		}, rules, now)
		if err != nil {
			appLogger.Fatal("Failed to seed grant", zap.String("slug", grant.Slug), zap.Error(err))
		}
		appLogger.Info("Seeded grant", zap.String("slug", grant.Slug), zap.Int("rules", len(rules)))
	}

	// Drop the cached catalog snapshot so the service picks up the new data.
	redisClient := cache.New(&cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err == nil {
		if err := redisClient.Del(ctx, "grantscan:catalog"); err != nil {
			appLogger.Warn("Failed to invalidate catalog cache", zap.Error(err))
		}
	} else {
		appLogger.Warn("Redis unavailable, skipping cache invalidation", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!", zap.Int("grants", len(grants)))
}

func loadSeedFile(path string) ([]seedGrant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var grants []seedGrant
	if err := json.Unmarshal(data, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

func createTables(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS grants (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			short_description TEXT NOT NULL DEFAULT '',
			long_description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			max_amount DOUBLE PRECISION,
			amount_description TEXT NOT NULL DEFAULT '',
			source_organisation TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			application_url TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS eligibility_rules (
			id UUID PRIMARY KEY,
			grant_id UUID NOT NULL REFERENCES grants(id) ON DELETE CASCADE,
			rule_group INTEGER NOT NULL DEFAULT 0,
			field TEXT NOT NULL,
			operator TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			is_mandatory BOOLEAN NOT NULL DEFAULT TRUE,
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS scan_results (
			id UUID PRIMARY KEY,
			total_grants INTEGER NOT NULL,
			total_value DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scan_result_grants (
			id UUID PRIMARY KEY,
			scan_result_id UUID NOT NULL REFERENCES scan_results(id) ON DELETE CASCADE,
			grant_id UUID NOT NULL REFERENCES grants(id),
			match_type TEXT NOT NULL,
			match_score DOUBLE PRECISION NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_eligibility_rules_grant_id ON eligibility_rules(grant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_result_grants_scan_id ON scan_result_grants(scan_result_id)`,
		`CREATE INDEX IF NOT EXISTS idx_grants_category ON grants(category)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
