package models

import (
	"time"

	"grantscan/internal/engine"

	"github.com/google/uuid"
)

type Grant struct {
	ID                 uuid.UUID `db:"id"`
	Name               string    `db:"name"`
	Slug               string    `db:"slug"`
	ShortDescription   string    `db:"short_description"`
	LongDescription    string    `db:"long_description"`
	Category           string    `db:"category"`
	MaxAmount          *float64  `db:"max_amount"`
	AmountDescription  string    `db:"amount_description"`
	SourceOrganisation string    `db:"source_organisation"`
	SourceURL          string    `db:"source_url"`
	ApplicationURL     string    `db:"application_url"`
	IsActive           bool      `db:"is_active"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`

	Rules []EligibilityRule
}

type EligibilityRule struct {
	ID          uuid.UUID `db:"id"`
	GrantID     uuid.UUID `db:"grant_id"`
	RuleGroup   int       `db:"rule_group"`
	Field       string    `db:"field"`
	Operator    string    `db:"operator"`
	Value       string    `db:"value"`
	Description string    `db:"description"`
	IsMandatory bool      `db:"is_mandatory"`
	SortOrder   int       `db:"sort_order"`
}

// Engine converts the stored grant into the engine's normalized form. The
// engine never sees storage types (or the database at all).
func (g *Grant) Engine() engine.Grant {
	rules := make([]engine.Rule, 0, len(g.Rules))
	for _, r := range g.Rules {
		rules = append(rules, engine.Rule{
			Group:       r.RuleGroup,
			Field:       r.Field,
			Operator:    r.Operator,
			Value:       r.Value,
			Description: r.Description,
			Mandatory:   r.IsMandatory,
		})
	}
	return engine.Grant{
		ID:                 g.ID.String(),
		Name:               g.Name,
		Slug:               g.Slug,
		Category:           g.Category,
		ShortDescription:   g.ShortDescription,
		MaxAmount:          g.MaxAmount,
		AmountDescription:  g.AmountDescription,
		SourceOrganisation: g.SourceOrganisation,
		SourceURL:          g.SourceURL,
		ApplicationURL:     g.ApplicationURL,
		Rules:              rules,
	}
}
