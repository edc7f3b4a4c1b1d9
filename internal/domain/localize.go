package domain

// Placeholder returned when even the English name is missing. That state is
// a data-shape defect the loader normally rejects, but resolution stays
// total either way.
const (
	PlaceholderName        = "Untitled"
	PlaceholderDescription = "No description available"
)

// ResolveName picks the display name for a record: requested language, then
// English, then a fixed placeholder. Pure function, never returns "".
func ResolveName(record *CatalogRecord, lang LanguageCode) string {
	return resolveField(record.LocalizedName, lang, PlaceholderName)
}

// ResolveDescription is the same chain for descriptions. The placeholder is
// catalog-configurable; pass "" to use the generic default.
func ResolveDescription(record *CatalogRecord, lang LanguageCode, placeholder string) string {
	if placeholder == "" {
		placeholder = PlaceholderDescription
	}
	return resolveField(record.LocalizedDescription, lang, placeholder)
}

// ResolveLabel resolves category and sub-category labels. Two-step chain:
// requested language, then English. Label sets are small and only English is
// reliably populated.
func ResolveLabel(labels map[LanguageCode]string, lang LanguageCode) string {
	return resolveField(labels, lang, PlaceholderName)
}

func resolveField(values map[LanguageCode]string, lang LanguageCode, placeholder string) string {
	if v, ok := values[lang]; ok && v != "" {
		return v
	}
	if v, ok := values[DefaultLanguage]; ok && v != "" {
		return v
	}
	return placeholder
}

// Project resolves the localized view of a record once, for handoff to the
// detail screen.
func Project(record *CatalogRecord, lang LanguageCode, descriptionPlaceholder string) RecordProjection {
	return RecordProjection{
		ID:              record.ID,
		Name:            ResolveName(record, lang),
		Description:     ResolveDescription(record, lang, descriptionPlaceholder),
		Category:        record.Category,
		SubCategory:     record.SubCategoryID(),
		FacetAttributes: record.FacetAttributes,
		Rating:          record.Rating,
		Images:          record.Images,
		OpeningHours:    record.OpeningHours,
		Phone:           record.Phone,
		Website:         record.Website,
		Address:         record.Address,
	}
}
