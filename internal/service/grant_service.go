package service

import (
	"context"
	"errors"
	"sort"

	"grantscan/internal/dto"
	"grantscan/internal/engine"
	"grantscan/internal/models"

	"go.uber.org/zap"
)

// ErrGrantNotFound is returned when a grant slug does not exist.
var ErrGrantNotFound = errors.New("grant not found")

// GrantBrowseRepository covers the catalog browsing queries.
type GrantBrowseRepository interface {
	List(ctx context.Context, category string, page, perPage int) ([]*models.Grant, int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Grant, error)
	CategoryCounts(ctx context.Context) (map[string]int, error)
}

// GrantService serves the public catalog browsing endpoints.
type GrantService struct {
	repo   GrantBrowseRepository
	logger *zap.Logger
}

func NewGrantService(repo GrantBrowseRepository, logger *zap.Logger) *GrantService {
	return &GrantService{
		repo:   repo,
		logger: logger,
	}
}

// List returns a page of active grants, optionally filtered by category.
func (s *GrantService) List(ctx context.Context, category string, page, perPage int) (*dto.GrantListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	grants, total, err := s.repo.List(ctx, category, page, perPage)
	if err != nil {
		return nil, err
	}

	items := make([]dto.GrantResponse, 0, len(grants))
	for _, g := range grants {
		items = append(items, toGrantResponse(g, false))
	}

	return &dto.GrantListResponse{
		Grants:  items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// GetBySlug returns one grant with its full rule set.
func (s *GrantService) GetBySlug(ctx context.Context, slug string) (*dto.GrantResponse, error) {
	grant, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, ErrGrantNotFound
	}
	response := toGrantResponse(grant, true)
	return &response, nil
}

// Categories returns the active grant count per category, alphabetical by
// category code.
func (s *GrantService) Categories(ctx context.Context) ([]dto.CategoryCount, error) {
	counts, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]dto.CategoryCount, 0, len(counts))
	for category, count := range counts {
		categories = append(categories, dto.CategoryCount{
			Category: category,
			Label:    engine.CategoryLabel(category),
			Count:    count,
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})
	return categories, nil
}

func toGrantResponse(g *models.Grant, withRules bool) dto.GrantResponse {
	response := dto.GrantResponse{
		ID:                 g.ID.String(),
		Name:               g.Name,
		Slug:               g.Slug,
		ShortDescription:   g.ShortDescription,
		LongDescription:    g.LongDescription,
		Category:           g.Category,
		CategoryLabel:      engine.CategoryLabel(g.Category),
		MaxAmount:          g.MaxAmount,
		AmountDescription:  g.AmountDescription,
		SourceOrganisation: g.SourceOrganisation,
		SourceURL:          g.SourceURL,
		ApplicationURL:     g.ApplicationURL,
	}
	if withRules {
		rules := make([]dto.RuleResponse, 0, len(g.Rules))
		for _, r := range g.Rules {
			rules = append(rules, dto.RuleResponse{
				RuleGroup:   r.RuleGroup,
				Field:       r.Field,
				Operator:    r.Operator,
				Value:       r.Value,
				Description: r.Description,
				IsMandatory: r.IsMandatory,
			})
		}
		response.EligibilityRules = rules
	}
	return response
}
