package domain

import "strings"

// LanguageCode is a supported UI language. English is the mandatory default:
// every record carries an English name, so fallback resolution is total.
type LanguageCode string

const (
	LangEnglish LanguageCode = "en"
	LangTamil   LanguageCode = "ta"
	LangHindi   LanguageCode = "hi"
	LangFrench  LanguageCode = "fr"
	LangGerman  LanguageCode = "de"
)

// DefaultLanguage is the last resolvable step of every fallback chain.
const DefaultLanguage = LangEnglish

// SupportedLanguages returns the closed set of language codes the catalogs
// may carry. Only English is guaranteed to be populated.
func SupportedLanguages() []LanguageCode {
	return []LanguageCode{LangEnglish, LangTamil, LangHindi, LangFrench, LangGerman}
}

// IsSupportedLanguage checks membership in the closed language set.
func IsSupportedLanguage(code LanguageCode) bool {
	for _, l := range SupportedLanguages() {
		if l == code {
			return true
		}
	}
	return false
}

// NormalizeLanguage lowercases a raw code and maps anything outside the
// supported set to the default. An unknown code is not an error, it simply
// resolves like a missing translation.
func NormalizeLanguage(raw string) LanguageCode {
	code := LanguageCode(strings.ToLower(strings.TrimSpace(raw)))
	if IsSupportedLanguage(code) {
		return code
	}
	return DefaultLanguage
}
