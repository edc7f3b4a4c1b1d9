package domain

// ViewState is the browse level currently displayed. A mounted screen is
// always in exactly one of the three states.
type ViewState string

const (
	ViewCategory    ViewState = "category_view"
	ViewSubCategory ViewState = "sub_category_view"
	ViewList        ViewState = "list_view"
)

// BrowseState is the state machine of one browse screen: the current view
// plus the facet selection. All transition methods are guarded; an invalid
// trigger is an ignored no-op and never corrupts the filter state.
type BrowseState struct {
	View   ViewState
	Filter FilterState
}

// NewBrowseState starts at CategoryView with an empty selection.
func NewBrowseState() BrowseState {
	return BrowseState{
		View:   ViewCategory,
		Filter: NewFilterState(),
	}
}

// SelectCategory enters SubCategoryView for nested categories and ListView
// for flat ones. Sub-category and extra facets are reset atomically with the
// category change. Valid only from CategoryView.
func (b *BrowseState) SelectCategory(c *Category) bool {
	if b.View != ViewCategory || c == nil {
		return false
	}
	b.Filter.SetCategory(c)
	if c.HasSubCategories {
		b.View = ViewSubCategory
	} else {
		b.View = ViewList
	}
	return true
}

// SelectSubCategory enters ListView. The sub-category must belong to the
// selected category; anything else is ignored.
func (b *BrowseState) SelectSubCategory(subCategoryID string) bool {
	if b.View != ViewSubCategory || b.Filter.SelectedCategory == nil {
		return false
	}
	sub := b.Filter.SelectedCategory.FindSubCategory(subCategoryID)
	if sub == nil {
		return false
	}
	b.Filter.SelectedSubCategory = sub
	b.View = ViewList
	return true
}

// Back pops exactly one browse level. From ListView it returns to
// SubCategoryView only when that level exists for the selected category;
// flat categories go straight back to CategoryView. The returned flag is
// true when the screen itself should be left (back at CategoryView), which
// is propagated to the navigation collaborator rather than handled here.
func (b *BrowseState) Back() (leaveScreen bool) {
	switch b.View {
	case ViewList:
		if b.Filter.SelectedCategory != nil && b.Filter.SelectedCategory.HasSubCategories {
			b.Filter.SelectedSubCategory = nil
			b.View = ViewSubCategory
		} else {
			b.Filter.SetCategory(nil)
			b.View = ViewCategory
		}
		return false
	case ViewSubCategory:
		b.Filter.SetCategory(nil)
		b.View = ViewCategory
		return false
	default:
		return true
	}
}

// ShowAll is the explicit clear-filters action: back to CategoryView with
// category, sub-category and facets cleared in one transition.
func (b *BrowseState) ShowAll() bool {
	if b.View != ViewList {
		return false
	}
	b.Filter.Clear()
	b.View = ViewCategory
	return true
}

// SetFacet records an extra facet selection. Facets are only meaningful
// while the list is visible and never change the view state.
func (b *BrowseState) SetFacet(key, value string) bool {
	if b.View != ViewList || key == "" {
		return false
	}
	b.Filter.SelectedFacets[key] = value
	return true
}

// ClearFacet removes one facet selection.
func (b *BrowseState) ClearFacet(key string) bool {
	if b.View != ViewList {
		return false
	}
	delete(b.Filter.SelectedFacets, key)
	return true
}
