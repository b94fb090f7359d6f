package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grantscan/internal/dto"
	"grantscan/internal/engine"
	"grantscan/internal/models"
	"grantscan/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrScanNotFound is returned when a stored scan id does not exist.
var ErrScanNotFound = errors.New("scan not found")

// CatalogProvider supplies the normalized catalog to scan against.
type CatalogProvider interface {
	Snapshot(ctx context.Context) ([]engine.Grant, error)
}

// ScanStore persists scan runs and rebuilds them later.
type ScanStore interface {
	Create(ctx context.Context, scan *models.ScanResult, grants []*models.ScanResultGrant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScanResult, error)
	ListGrants(ctx context.Context, scanID uuid.UUID) ([]*models.ScanResultGrant, []*models.Grant, error)
}

// ScanService runs eligibility scans: normalize the profile, match it
// against the catalog, price the matches, and persist the ranked outcome.
type ScanService struct {
	catalog CatalogProvider
	store   ScanStore
	matcher *engine.Matcher
	logger  *zap.Logger
}

func NewScanService(catalog CatalogProvider, store ScanStore, logger *zap.Logger) *ScanService {
	return &ScanService{
		catalog: catalog,
		store:   store,
		matcher: engine.NewMatcher(),
		logger:  logger,
	}
}

// Run executes a full scan for one applicant profile.
func (s *ScanService) Run(ctx context.Context, rawProfile map[string]any) (*dto.ScanResponse, error) {
	started := time.Now()

	profile := engine.ProfileFromMap(rawProfile)
	deriveFlags(profile)

	grants, err := s.catalog.Snapshot(ctx)
	if err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	results := s.matcher.Match(profile, grants)
	incomeBracket := profile.Get("income_bracket").Text()
	matches := engine.Enrich(results, incomeBracket, profile)
	summary := engine.Summarize(matches)

	scan := &models.ScanResult{
		ID:          uuid.New(),
		TotalGrants: summary.TotalFound,
		TotalValue:  summary.TotalValue,
		CreatedAt:   time.Now().UTC(),
	}
	rows, err := scanRows(scan.ID, matches)
	if err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if err := s.store.Create(ctx, scan, rows); err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("persist scan: %w", err)
	}

	metrics.ScansTotal.WithLabelValues("success").Inc()
	metrics.ScanDuration.Observe(time.Since(started).Seconds())
	metrics.GrantsMatched.Observe(float64(summary.TotalFound))

	s.logger.Info("Scan completed",
		zap.String("scan_id", scan.ID.String()),
		zap.Int("grants_found", summary.TotalFound),
		zap.Float64("total_value", summary.TotalValue),
	)

	response := buildResponse(summary)
	response.ScanID = scan.ID.String()
	response.GeneratedAt = scan.CreatedAt.Format(time.RFC3339)
	return response, nil
}

// Get rebuilds a stored scan. Savings are not recomputed: the applicant
// profile is never persisted, so only the match outcome is available.
func (s *ScanService) Get(ctx context.Context, id uuid.UUID) (*dto.ScanResponse, error) {
	scan, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scan == nil {
		return nil, ErrScanNotFound
	}

	storedMatches, grants, err := s.store.ListGrants(ctx, id)
	if err != nil {
		return nil, err
	}

	matches := make([]engine.GrantMatch, 0, len(storedMatches))
	for i, stored := range storedMatches {
		normalized := grants[i].Engine()
		matches = append(matches, engine.GrantMatch{
			Result: engine.MatchResult{
				GrantID:            normalized.ID,
				GrantName:          normalized.Name,
				Slug:               normalized.Slug,
				Category:           normalized.Category,
				ShortDescription:   normalized.ShortDescription,
				MaxAmount:          normalized.MaxAmount,
				AmountDescription:  normalized.AmountDescription,
				SourceOrganisation: normalized.SourceOrganisation,
				SourceURL:          normalized.SourceURL,
				ApplicationURL:     normalized.ApplicationURL,
				MatchType:          engine.MatchType(stored.MatchType),
				MatchScore:         stored.MatchScore,
				Notes:              stored.Notes,
			},
			HowToClaim: engine.HowToClaim(normalized.Slug),
		})
	}

	summary := engine.Summarize(matches)
	response := buildResponse(summary)
	response.ScanID = scan.ID.String()
	response.GeneratedAt = scan.CreatedAt.Format(time.RFC3339)
	return response, nil
}

// deriveFlags expands raw answers into the boolean attributes the rule
// vocabulary uses, so rules do not have to re-derive them from numbers.
func deriveFlags(profile engine.Profile) {
	if age, err := profile.Get("age").Float(); err == nil {
		profile["is_over_65"] = engine.Bool(age >= 65)
		profile["is_over_66"] = engine.Bool(age >= 66)
		profile["is_over_70"] = engine.Bool(age >= 70)
	}
	if youngest, err := profile.Get("youngest_child_age").Float(); err == nil {
		profile["has_child_under_7"] = engine.Bool(youngest < 7)
	}
}

func scanRows(scanID uuid.UUID, matches []engine.GrantMatch) ([]*models.ScanResultGrant, error) {
	rows := make([]*models.ScanResultGrant, 0, len(matches))
	for i, match := range matches {
		grantID, err := uuid.Parse(match.Result.GrantID)
		if err != nil {
			return nil, fmt.Errorf("invalid grant id %q: %w", match.Result.GrantID, err)
		}
		rows = append(rows, &models.ScanResultGrant{
			ID:           uuid.New(),
			ScanResultID: scanID,
			GrantID:      grantID,
			MatchType:    string(match.Result.MatchType),
			MatchScore:   match.Result.MatchScore,
			Notes:        match.Result.Notes,
			SortOrder:    i,
		})
	}
	return rows, nil
}

func buildResponse(summary engine.ScanSummary) *dto.ScanResponse {
	categories := make([]dto.CategoryResult, 0, len(summary.Categories))
	for _, bucket := range summary.Categories {
		grants := make([]dto.GrantMatchResponse, 0, len(bucket.Matches))
		for _, match := range bucket.Matches {
			grants = append(grants, dto.GrantMatchResponse{
				GrantID:                  match.Result.GrantID,
				Name:                     match.Result.GrantName,
				Slug:                     match.Result.Slug,
				ShortDescription:         match.Result.ShortDescription,
				MatchType:                string(match.Result.MatchType),
				MatchScore:               match.Result.MatchScore,
				MaxAmount:                match.Result.MaxAmount,
				AmountDescription:        match.Result.AmountDescription,
				SourceOrganisation:       match.Result.SourceOrganisation,
				SourceURL:                match.Result.SourceURL,
				ApplicationURL:           match.Result.ApplicationURL,
				Category:                 match.Result.Category,
				Notes:                    match.Result.Notes,
				EstimatedAnnualSaving:    match.Savings.AnnualSaving,
				EstimatedBackdatedSaving: match.Savings.BackdatedSaving,
				SavingsNote:              match.Savings.Note,
				HowToClaim:               match.HowToClaim,
			})
		}
		categories = append(categories, dto.CategoryResult{
			Category:   bucket.Category,
			Label:      bucket.Label,
			Count:      bucket.Count,
			TotalValue: bucket.TotalValue,
			Grants:     grants,
		})
	}
	return &dto.ScanResponse{
		TotalGrantsFound:    summary.TotalFound,
		TotalPotentialValue: summary.TotalValue,
		Categories:          categories,
	}
}
