package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/catalog-browse-service/internal/domain"
)

func TestResolveName_FallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		names    map[domain.LanguageCode]string
		lang     domain.LanguageCode
		expected string
	}{
		{
			name:     "requested language present",
			names:    map[domain.LanguageCode]string{"en": "Marina Beach", "ta": "மெரினா கடற்கரை"},
			lang:     domain.LangTamil,
			expected: "மெரினா கடற்கரை",
		},
		{
			name:     "missing translation falls back to English",
			names:    map[domain.LanguageCode]string{"en": "Sea Breeze Café"},
			lang:     domain.LangTamil,
			expected: "Sea Breeze Café",
		},
		{
			name:     "empty translation falls back to English",
			names:    map[domain.LanguageCode]string{"en": "Sea Breeze Café", "ta": ""},
			lang:     domain.LangTamil,
			expected: "Sea Breeze Café",
		},
		{
			name:     "English missing yields placeholder",
			names:    map[domain.LanguageCode]string{},
			lang:     domain.LangFrench,
			expected: domain.PlaceholderName,
		},
		{
			name:     "nil map yields placeholder",
			names:    nil,
			lang:     domain.LangEnglish,
			expected: domain.PlaceholderName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &domain.CatalogRecord{ID: "r1", LocalizedName: tt.names}
			assert.Equal(t, tt.expected, domain.ResolveName(record, tt.lang))
		})
	}
}

// Resolution must be total: a non-empty string for every record and every
// supported language, even when only English is populated.
func TestResolveName_Totality(t *testing.T) {
	records := []*domain.CatalogRecord{
		{ID: "a", LocalizedName: map[domain.LanguageCode]string{"en": "Hill Fort"}},
		{ID: "b", LocalizedName: map[domain.LanguageCode]string{"en": "Old Pier", "ta": "பழைய படகுத்துறை"}},
		{ID: "c"}, // defensive case: no names at all
	}

	for _, r := range records {
		for _, lang := range domain.SupportedLanguages() {
			got := domain.ResolveName(r, lang)
			assert.NotEmpty(t, got, "record %s lang %s", r.ID, lang)
		}
	}
}

func TestResolveName_Pure(t *testing.T) {
	record := &domain.CatalogRecord{
		ID:            "r1",
		LocalizedName: map[domain.LanguageCode]string{"en": "Lighthouse"},
	}

	first := domain.ResolveName(record, domain.LangHindi)
	second := domain.ResolveName(record, domain.LangHindi)
	assert.Equal(t, first, second)
}

func TestResolveDescription_Placeholder(t *testing.T) {
	record := &domain.CatalogRecord{ID: "r1"}

	assert.Equal(t, domain.PlaceholderDescription, domain.ResolveDescription(record, domain.LangEnglish, ""))
	assert.Equal(t, "A quiet spot by the shore", domain.ResolveDescription(record, domain.LangEnglish, "A quiet spot by the shore"))
}

func TestResolveLabel(t *testing.T) {
	labels := map[domain.LanguageCode]string{"en": "Accommodation", "ta": "தங்குமிடம்"}

	assert.Equal(t, "தங்குமிடம்", domain.ResolveLabel(labels, domain.LangTamil))
	assert.Equal(t, "Accommodation", domain.ResolveLabel(labels, domain.LangFrench))
	assert.Equal(t, "Accommodation", domain.ResolveLabel(labels, domain.LangEnglish))
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, domain.LangTamil, domain.NormalizeLanguage("TA"))
	assert.Equal(t, domain.LangEnglish, domain.NormalizeLanguage(" en "))
	assert.Equal(t, domain.DefaultLanguage, domain.NormalizeLanguage("xx"))
	assert.Equal(t, domain.DefaultLanguage, domain.NormalizeLanguage(""))
}

func TestProject_ResolvesOnce(t *testing.T) {
	rating := 4.5
	record := &domain.CatalogRecord{
		ID:       "r1",
		Category: "Hotels",
		LocalizedName: map[domain.LanguageCode]string{
			"en": "Sea Breeze Café",
		},
		LocalizedDescription: map[domain.LanguageCode]string{
			"en": "Fresh seafood by the water",
		},
		FacetAttributes: map[string]string{"crowdLevel": "Low"},
		Rating:          &rating,
		Images:          []string{"https://example.com/a.jpg"},
	}

	p := domain.Project(record, domain.LangTamil, "")

	assert.Equal(t, "Sea Breeze Café", p.Name)
	assert.Equal(t, "Fresh seafood by the water", p.Description)
	assert.Equal(t, "Hotels", p.Category)
	assert.Equal(t, map[string]string{"crowdLevel": "Low"}, p.FacetAttributes)
	assert.Equal(t, &rating, p.Rating)
}
