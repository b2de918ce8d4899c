// Package i18n serves the reader's interface strings for the supported locales.
//
// Tables are embedded YAML files, one per locale, with nested sections such as
// categories, search and common. Keys are addressed with dots:
// "categories.Sports", "common.loading".
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"newsflix/internal/domain/entity"
)

// Fallback is the locale used when a key is missing in the requested one.
const Fallback = entity.LanguageFrFR

//go:embed locales/*.yaml
var localeFS embed.FS

// Bundle holds the flattened tables of every locale.
type Bundle struct {
	dict map[entity.Language]map[string]string
}

// Load parses the embedded tables. The fallback table must be present.
func Load() (*Bundle, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	b := &Bundle{dict: map[entity.Language]map[string]string{}}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		raw, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", name, err)
		}
		flat := map[string]string{}
		flatten("", tree, flat)
		b.dict[entity.Language(strings.TrimSuffix(name, ".yaml"))] = flat
	}

	if _, ok := b.dict[Fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", Fallback)
	}
	return b, nil
}

// MustLoad is Load for program start-up; the tables are compiled in.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []entity.Language {
	out := make([]entity.Language, 0, len(b.dict))
	for l := range b.dict {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// T returns the string for key in lang, falling back to fr-fr and finally to key.
func (b *Bundle) T(lang entity.Language, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := b.dict[Fallback][key]; ok {
		return v
	}
	return key
}

// Category returns the display name of c in lang.
func (b *Bundle) Category(lang entity.Language, c entity.Category) string {
	return b.T(lang, "categories."+string(c))
}
