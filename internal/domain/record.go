package domain

// CatalogRecord is one point of interest inside a catalog. The id is unique
// within its catalog and stable across language selection. Localized maps are
// sparse; only the English name is guaranteed by the loader.
type CatalogRecord struct {
	ID                   string                  `json:"id"`
	Category             string                  `json:"category"`
	SubCategory          *string                 `json:"sub_category,omitempty"`
	LocalizedName        map[LanguageCode]string `json:"localized_name"`
	LocalizedDescription map[LanguageCode]string `json:"localized_description,omitempty"`
	FacetAttributes      map[string]string       `json:"facet_attributes,omitempty"`

	// Display-only fields, not involved in filtering or localization.
	Rating       *float64 `json:"rating,omitempty"`
	Images       []string `json:"images,omitempty"`
	OpeningHours string   `json:"opening_hours,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	Address      string   `json:"address,omitempty"`
}

// RatingOrZero treats a missing rating as 0 for sorting purposes.
func (r *CatalogRecord) RatingOrZero() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// SubCategoryID returns the empty string for records without a sub-category.
func (r *CatalogRecord) SubCategoryID() string {
	if r.SubCategory == nil {
		return ""
	}
	return *r.SubCategory
}

// RecordProjection is the localized view of a record handed to the detail
// screen. Localization is resolved once here; downstream consumers must not
// re-resolve.
type RecordProjection struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	SubCategory     string            `json:"sub_category,omitempty"`
	FacetAttributes map[string]string `json:"facet_attributes,omitempty"`
	Rating          *float64          `json:"rating,omitempty"`
	Images          []string          `json:"images,omitempty"`
	OpeningHours    string            `json:"opening_hours,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Website         string            `json:"website,omitempty"`
	Address         string            `json:"address,omitempty"`
}
