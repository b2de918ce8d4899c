package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsflix/internal/domain/entity"
)

func TestLoad_EveryLanguageHasATable(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	for _, info := range entity.Languages {
		assert.Contains(t, b.Locales(), info.Code)
	}
}

func TestLoad_TablesShareKeys(t *testing.T) {
	b := MustLoad()
	reference := b.dict[Fallback]

	for lang, table := range b.dict {
		assert.Len(t, table, len(reference), "locale %s", lang)
		for key := range reference {
			assert.Contains(t, table, key, "locale %s", lang)
		}
	}
}

func TestBundle_T(t *testing.T) {
	b := MustLoad()

	tests := []struct {
		name     string
		lang     entity.Language
		key      string
		expected string
	}{
		{name: "german category", lang: entity.LanguageDeDE, key: "categories.Sports", expected: "Sport"},
		{name: "english common", lang: entity.LanguageEnGB, key: "common.similarArticles", expected: "Similar Articles"},
		{name: "belgian uses french strings", lang: entity.LanguageBeBE, key: "categories.Business", expected: "Économie"},
		{name: "unknown locale falls back to french", lang: "xx-yy", key: "common.loading", expected: "Chargement des articles..."},
		{name: "unknown key returns key", lang: entity.LanguageEnUS, key: "common.missing", expected: "common.missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.T(tt.lang, tt.key))
		})
	}
}

func TestBundle_Category(t *testing.T) {
	b := MustLoad()

	for _, c := range entity.Categories {
		for _, info := range entity.Languages {
			assert.NotEqual(t, "categories."+string(c), b.Category(info.Code, c))
		}
	}
	assert.Equal(t, "Artículos Principales", b.Category(entity.LanguageEsES, entity.CategoryTopArticles))
}
