package engine

// Grant is the normalized program form the engine evaluates. It is built
// once at the data-access boundary; the engine never sees storage types.
type Grant struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Slug               string   `json:"slug"`
	Category           string   `json:"category"`
	ShortDescription   string   `json:"short_description"`
	MaxAmount          *float64 `json:"max_amount"`
	AmountDescription  string   `json:"amount_description"`
	SourceOrganisation string   `json:"source_organisation"`
	SourceURL          string   `json:"source_url"`
	ApplicationURL     string   `json:"application_url"`
	Rules              []Rule   `json:"rules"`
}

// Rule is one eligibility condition. Rules sharing a Group are AND-ed;
// distinct groups are alternative OR-ed qualification paths. Group numbers
// are local to their grant.
type Rule struct {
	Group       int    `json:"rule_group"`
	Field       string `json:"field"`
	Operator    string `json:"operator"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Mandatory   bool   `json:"is_mandatory"`
}
