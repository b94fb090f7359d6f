package dto

// ScanRequest carries the applicant profile as a flat JSON object keyed by
// the rule field vocabulary (age, home_status, welfare_payments, ...).
// Values may be booleans, numbers, strings, or lists of strings.
type ScanRequest struct {
	Profile map[string]any `json:"profile"`
}

type GrantMatchResponse struct {
	GrantID            string   `json:"grant_id"`
	Name               string   `json:"name"`
	Slug               string   `json:"slug"`
	ShortDescription   string   `json:"short_description"`
	MatchType          string   `json:"match_type"`
	MatchScore         float64  `json:"match_score"`
	MaxAmount          *float64 `json:"max_amount"`
	AmountDescription  string   `json:"amount_description"`
	SourceOrganisation string   `json:"source_organisation"`
	SourceURL          string   `json:"source_url"`
	ApplicationURL     string   `json:"application_url,omitempty"`
	Category           string   `json:"category"`
	Notes              string   `json:"notes"`

	EstimatedAnnualSaving    *float64 `json:"estimated_annual_saving"`
	EstimatedBackdatedSaving *float64 `json:"estimated_backdated_saving"`
	SavingsNote              string   `json:"savings_note"`
	HowToClaim               string   `json:"how_to_claim,omitempty"`
}

type CategoryResult struct {
	Category   string               `json:"category"`
	Label      string               `json:"label"`
	Count      int                  `json:"count"`
	TotalValue float64              `json:"total_value"`
	Grants     []GrantMatchResponse `json:"grants"`
}

type ScanResponse struct {
	ScanID              string           `json:"scan_id,omitempty"`
	TotalGrantsFound    int              `json:"total_grants_found"`
	TotalPotentialValue float64          `json:"total_potential_value"`
	Categories          []CategoryResult `json:"categories"`
	GeneratedAt         string           `json:"generated_at"`
}
