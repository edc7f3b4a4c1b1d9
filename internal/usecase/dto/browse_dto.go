package dto

import "github.com/catalog-browse-service/internal/domain"

// CreateSessionRequest mounts a browse screen for one catalog. Language
// overrides the process-wide preference for this session only.
type CreateSessionRequest struct {
	CatalogID string `json:"catalog_id" validate:"required"`
	Language  string `json:"language,omitempty"`
}

// Browse event types accepted by the session event endpoint.
const (
	EventSelectCategory    = "select_category"
	EventSelectSubCategory = "select_subcategory"
	EventSetFacet          = "set_facet"
	EventClearFacet        = "clear_facet"
	EventBack              = "back"
	EventShowAll           = "show_all"
)

// BrowseEventRequest is one user action delivered to a session. Exactly one
// transition is applied per request; invalid triggers are ignored no-ops.
type BrowseEventRequest struct {
	Type          string `json:"type" validate:"required,oneof=select_category select_subcategory set_facet clear_facet back show_all"`
	CategoryID    string `json:"category_id,omitempty"`
	SubCategoryID string `json:"sub_category_id,omitempty"`
	FacetKey      string `json:"facet_key,omitempty"`
	FacetValue    string `json:"facet_value,omitempty"`
}

// CategoryItem is a localized category entry for the category grid.
type CategoryItem struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	HasSubCategories bool   `json:"has_sub_categories"`
}

// SubCategoryItem is a localized sub-category entry.
type SubCategoryItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// RecordItem is one localized row of the filtered list.
type RecordItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// SessionView is the renderable snapshot of a session. Loading stays true
// while the initial catalog load is outstanding, which keeps an empty
// record list distinguishable from "no results".
type SessionView struct {
	SessionID           string                      `json:"session_id"`
	CatalogID           string                      `json:"catalog_id"`
	Language            string                      `json:"language"`
	ViewState           domain.ViewState            `json:"view_state"`
	Loading             bool                        `json:"loading"`
	SelectedCategory    string                      `json:"selected_category,omitempty"`
	SelectedSubCategory string                      `json:"selected_sub_category,omitempty"`
	SelectedFacets      map[string]string           `json:"selected_facets,omitempty"`
	Categories          []CategoryItem              `json:"categories,omitempty"`
	SubCategories       []SubCategoryItem           `json:"sub_categories,omitempty"`
	Records             []RecordItem                `json:"records,omitempty"`
	Navigation          *domain.NavigationDirective `json:"navigation,omitempty"`
}

// RecordSelection is the detail-view handoff: the localized projection plus
// the navigation directive for the collaborator.
type RecordSelection struct {
	Record     domain.RecordProjection    `json:"record"`
	Navigation domain.NavigationDirective `json:"navigation"`
}
