// Package fixtures provides reusable news API payloads and article values for tests.
package fixtures

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// WireSummary returns one list or search entry as the API encodes it.
// A zero id omits the id_article field, as the list endpoint does.
//
// Example:
//
//	body := ListBody(WireSummary(42, "Breaking News", "Le Monde"))
func WireSummary(id int64, title, source string) map[string]any {
	entry := map[string]any{
		"Titre":           title,
		"Journal":         source,
		"Date":            "2024-03-02 10:15:00",
		"URLImage":        "https://img.newsflix.test/" + strconv.FormatInt(id, 10) + ".jpg",
		"Contenu":         "<p>" + title + " excerpt</p>",
		"SimilarArticles": []map[string]any{},
	}
	if id > 0 {
		entry["id_article"] = id
	}
	return entry
}

// ListBody encodes entries under the top-level "articles" field.
func ListBody(entries ...map[string]any) []byte {
	if entries == nil {
		entries = []map[string]any{}
	}
	return mustJSON(map[string]any{"articles": entries})
}

// DetailRecord returns a detail record with flattened similar fields.
// similar[i] fills slot i+1; a zero id leaves the slot's id at 0.
func DetailRecord(id int64, title string, similar ...int64) map[string]any {
	record := map[string]any{
		"id_article": id,
		"Titre":      title,
		"Journal":    "Le Monde",
		"Date":       "2024-03-02T10:15:00Z",
		"URLImage":   "https://img.newsflix.test/" + strconv.FormatInt(id, 10) + ".jpg",
		"Contenu":    "<p>First paragraph.</p><p>Second paragraph.</p>",
		"Resume":     "Short summary.",
	}
	for i, sid := range similar {
		n := strconv.Itoa(i + 1)
		record["id_article"+n] = sid
		record["title_id_article"+n] = fmt.Sprintf("Similar %d", i+1)
		record["source_id_article"+n] = "Source " + n
		record["date_id_article"+n] = "2024-03-01"
	}
	return record
}

// DetailBody encodes DetailRecord.
func DetailBody(id int64, title string, similar ...int64) []byte {
	return mustJSON(DetailRecord(id, title, similar...))
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
