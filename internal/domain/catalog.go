package domain

// MatchMode controls how a facet value is compared against a record
// attribute. Exact is the default; Contains exists for legacy free-text
// facets (crowd level) and must be opted into per facet key.
type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchContains MatchMode = "contains"
)

// SubCategory is a second-level grouping inside a category.
type SubCategory struct {
	ID     string                  `json:"id"`
	Labels map[LanguageCode]string `json:"labels"`
}

// Category is a first-level grouping. SubCategories is empty whenever
// HasSubCategories is false; the browse state machine relies on that.
type Category struct {
	ID               string                  `json:"id"`
	Labels           map[LanguageCode]string `json:"labels"`
	HasSubCategories bool                    `json:"has_sub_categories"`
	SubCategories    []SubCategory           `json:"sub_categories,omitempty"`
}

// FindSubCategory returns the sub-category with the given id, or nil when it
// does not belong to this category.
func (c *Category) FindSubCategory(id string) *SubCategory {
	for i := range c.SubCategories {
		if c.SubCategories[i].ID == id {
			return &c.SubCategories[i]
		}
	}
	return nil
}

// FacetConfig declares one filterable attribute of a catalog and how its
// values are matched.
type FacetConfig struct {
	Key       string    `json:"key"`
	MatchMode MatchMode `json:"match_mode"`
}

// CatalogConfig is the per-catalog configuration a browse screen is
// parameterized with: its category tree, its facet vocabulary and matching
// modes, and its display defaults.
type CatalogConfig struct {
	ID                     string                  `json:"id"`
	Labels                 map[LanguageCode]string `json:"labels"`
	Categories             []Category              `json:"categories"`
	Facets                 []FacetConfig           `json:"facets,omitempty"`
	SortByRating           bool                    `json:"sort_by_rating,omitempty"`
	DescriptionPlaceholder string                  `json:"description_placeholder,omitempty"`
}

// FindCategory returns the category with the given id, or nil.
func (c *CatalogConfig) FindCategory(id string) *Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// FacetMatchModes builds the key -> mode lookup used by the filter engine.
// Keys without an explicit mode match exactly.
func (c *CatalogConfig) FacetMatchModes() map[string]MatchMode {
	modes := make(map[string]MatchMode, len(c.Facets))
	for _, f := range c.Facets {
		mode := f.MatchMode
		if mode != MatchContains {
			mode = MatchExact
		}
		modes[f.Key] = mode
	}
	return modes
}
