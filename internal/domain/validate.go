package domain

import "fmt"

// ValidateRecords enforces the dataset invariants: every record carries a
// non-empty id, ids are unique within the catalog, and the English name is
// present. A violation is a data-shape error; the catalog source treats it
// as a failed load.
func ValidateRecords(records []CatalogRecord) error {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		r := &records[i]
		if r.ID == "" {
			return fmt.Errorf("record %d: missing id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("record %q: duplicate id", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.LocalizedName[DefaultLanguage] == "" {
			return fmt.Errorf("record %q: missing English name", r.ID)
		}
	}
	return nil
}

// ValidateConfig enforces the category tree invariants: every category has
// an English label and flat categories carry no sub-category list.
func ValidateConfig(cfg *CatalogConfig) error {
	for i := range cfg.Categories {
		c := &cfg.Categories[i]
		if !c.HasSubCategories && len(c.SubCategories) > 0 {
			return fmt.Errorf("category %q: flat category carries sub-categories", c.ID)
		}
		if c.Labels[DefaultLanguage] == "" {
			return fmt.Errorf("category %q: missing English label", c.ID)
		}
	}
	return nil
}
