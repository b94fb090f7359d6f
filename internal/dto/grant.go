package dto

type RuleResponse struct {
	RuleGroup   int    `json:"rule_group"`
	Field       string `json:"field"`
	Operator    string `json:"operator"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	IsMandatory bool   `json:"is_mandatory"`
}

type GrantResponse struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Slug               string         `json:"slug"`
	ShortDescription   string         `json:"short_description"`
	LongDescription    string         `json:"long_description,omitempty"`
	Category           string         `json:"category"`
	CategoryLabel      string         `json:"category_label"`
	MaxAmount          *float64       `json:"max_amount"`
	AmountDescription  string         `json:"amount_description"`
	SourceOrganisation string         `json:"source_organisation"`
	SourceURL          string         `json:"source_url"`
	ApplicationURL     string         `json:"application_url,omitempty"`
	EligibilityRules   []RuleResponse `json:"eligibility_rules,omitempty"`
}

type GrantListResponse struct {
	Grants  []GrantResponse `json:"grants"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}
