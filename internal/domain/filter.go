package domain

import (
	"sort"
	"strings"
)

// FilterState is the current facet selection of a browse screen.
// SelectedSubCategory is only ever non-nil when SelectedCategory is non-nil
// and the sub-category belongs to it; the state machine enforces that.
type FilterState struct {
	SelectedCategory    *Category
	SelectedSubCategory *SubCategory
	SelectedFacets      map[string]string
}

// NewFilterState returns an empty selection.
func NewFilterState() FilterState {
	return FilterState{SelectedFacets: map[string]string{}}
}

// SetCategory replaces the selected category and atomically resets the
// sub-category and all extra facets.
func (f *FilterState) SetCategory(c *Category) {
	f.SelectedCategory = c
	f.SelectedSubCategory = nil
	f.SelectedFacets = map[string]string{}
}

// Clear resets the whole selection in one step.
func (f *FilterState) Clear() {
	f.SetCategory(nil)
}

// ApplyFilter returns the records passing the current selection. Pure
// AND-conjunction over category, sub-category and every selected facet.
// The input slice is never mutated and passing records keep their order.
func ApplyFilter(records []CatalogRecord, state FilterState, modes map[string]MatchMode) []CatalogRecord {
	result := make([]CatalogRecord, 0, len(records))
	for i := range records {
		if recordMatches(&records[i], state, modes) {
			result = append(result, records[i])
		}
	}
	return result
}

func recordMatches(r *CatalogRecord, state FilterState, modes map[string]MatchMode) bool {
	if state.SelectedCategory != nil && r.Category != state.SelectedCategory.ID {
		return false
	}
	if state.SelectedSubCategory != nil && r.SubCategoryID() != state.SelectedSubCategory.ID {
		return false
	}
	for key, want := range state.SelectedFacets {
		if !facetMatches(r.FacetAttributes[key], want, modes[key]) {
			return false
		}
	}
	return true
}

func facetMatches(have, want string, mode MatchMode) bool {
	if mode == MatchContains {
		return strings.Contains(have, want)
	}
	return have == want
}

// SortByRating orders records by rating descending, treating a missing
// rating as 0. The sort is stable: ties keep their insertion order, which is
// what makes the merged all-categories listing deterministic.
func SortByRating(records []CatalogRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RatingOrZero() > records[j].RatingOrZero()
	})
}
