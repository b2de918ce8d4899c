package entity

import "strings"

// Category is one of the fixed article categories offered by the list endpoint.
type Category string

const (
	CategoryTopArticles   Category = "TopArticles"
	CategoryPolitics      Category = "Politics"
	CategorySports        Category = "Sports"
	CategoryTechnology    Category = "Technology"
	CategoryEntertainment Category = "Entertainment"
	CategoryBusiness      Category = "Business"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTopArticles,
	CategoryPolitics,
	CategorySports,
	CategoryTechnology,
	CategoryEntertainment,
	CategoryBusiness,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Next returns the category after c, wrapping around.
func (c Category) Next() Category {
	for i, known := range Categories {
		if c == known {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return Categories[0]
}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, known := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", &ValidationError{Field: "category", Message: "unknown category " + s}
}

// Language is a lower-case locale tag such as "fr-fr".
type Language string

const (
	LanguageEnUS Language = "en-us"
	LanguageEnGB Language = "en-gb"
	LanguageFrFR Language = "fr-fr"
	LanguageEsES Language = "es-es"
	LanguageDeDE Language = "de-de"
	LanguageItIT Language = "it-it"
	LanguageEnIE Language = "en-ie"
	LanguageBeBE Language = "be-be"
)

// LanguageInfo carries the display data of a locale.
type LanguageInfo struct {
	Code  Language
	Label string
	Flag  string
}

// Languages lists every supported locale in display order.
var Languages = []LanguageInfo{
	{Code: LanguageEnUS, Label: "United States", Flag: "🇺🇸"},
	{Code: LanguageEnGB, Label: "United Kingdom", Flag: "🇬🇧"},
	{Code: LanguageFrFR, Label: "Français", Flag: "🇫🇷"},
	{Code: LanguageEsES, Label: "Español", Flag: "🇪🇸"},
	{Code: LanguageDeDE, Label: "Deutsch", Flag: "🇩🇪"},
	{Code: LanguageItIT, Label: "Italiano", Flag: "🇮🇹"},
	{Code: LanguageEnIE, Label: "Ireland", Flag: "🇮🇪"},
	{Code: LanguageBeBE, Label: "België", Flag: "🇧🇪"},
}

// Valid reports whether l is one of Languages.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known.Code {
			return true
		}
	}
	return false
}

// Info returns the display data of l, or the French entry for unknown tags.
func (l Language) Info() LanguageInfo {
	for _, known := range Languages {
		if l == known.Code {
			return known
		}
	}
	return Languages[2]
}

// Next returns the locale after l, wrapping around.
func (l Language) Next() Language {
	for i, known := range Languages {
		if l == known.Code {
			return Languages[(i+1)%len(Languages)].Code
		}
	}
	return Languages[0].Code
}

// ParseLanguage normalizes s ("FR_fr", " en-US ") and checks it against Languages.
func ParseLanguage(s string) (Language, error) {
	normalized := Language(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !normalized.Valid() {
		return "", &ValidationError{Field: "language", Message: "unsupported language " + s}
	}
	return normalized, nil
}

// FilterState is the persisted {category, language} pair shared by every view.
// A valid state always has both fields set.
type FilterState struct {
	Category Category `json:"category"`
	Language Language `json:"language"`
}

// DefaultFilterState returns {TopArticles, fr-fr}.
func DefaultFilterState() FilterState {
	return FilterState{Category: CategoryTopArticles, Language: LanguageFrFR}
}

// Validate checks that both fields hold known values.
func (f FilterState) Validate() error {
	if !f.Category.Valid() {
		return &ValidationError{Field: "category", Message: "unknown category " + string(f.Category)}
	}
	if !f.Language.Valid() {
		return &ValidationError{Field: "language", Message: "unsupported language " + string(f.Language)}
	}
	return nil
}

// FilterPatch is a partial update. Nil fields keep their current value.
type FilterPatch struct {
	Category *Category
	Language *Language
}

// Merge applies p on top of f.
func (f FilterState) Merge(p FilterPatch) FilterState {
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Language != nil {
		f.Language = *p.Language
	}
	return f
}

// WithCategory is a shorthand for a category-only patch.
func WithCategory(c Category) FilterPatch {
	return FilterPatch{Category: &c}
}

// WithLanguage is a shorthand for a language-only patch.
func WithLanguage(l Language) FilterPatch {
	return FilterPatch{Language: &l}
}
