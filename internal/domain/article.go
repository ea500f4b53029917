package domain

// Entities holds naively classified link texts found in an article, at most a handful per category.
type Entities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// NewEntities returns Entities with empty, non-nil categories so they serialize as [].
func NewEntities() Entities {
	return Entities{
		People:        []string{},
		Organizations: []string{},
		Locations:     []string{},
	}
}

// Normalized returns a copy whose nil categories are replaced by empty slices.
func (e Entities) Normalized() Entities {
	if e.People == nil {
		e.People = []string{}
	}
	if e.Organizations == nil {
		e.Organizations = []string{}
	}
	if e.Locations == nil {
		e.Locations = []string{}
	}
	return e
}

// ExtractedArticle is the structured content pulled out of one Wikipedia page.
type ExtractedArticle struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Body     string   `json:"content"`
	Sections []string `json:"sections"`
	Entities Entities `json:"key_entities"`
}
