package newsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tidwall/gjson"

	"newsflix/internal/domain/entity"
	"newsflix/internal/infra/htmltext"
)

// flexID accepts an article id encoded as a JSON number, a numeric string or null.
// Anything else decodes as 0 so one bad record cannot sink a whole list.
type flexID int64

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		slog.Warn("ignoring unparseable article id", slog.String("id_article", s))
		*f = 0
		return nil
	}
	*f = flexID(n)
	return nil
}

type similarDTO struct {
	ID      flexID `json:"id_article"`
	Titre   string `json:"Titre"`
	Journal string `json:"Journal"`
	Date    string `json:"Date"`
}

type summaryDTO struct {
	ID              flexID       `json:"id_article"`
	Titre           string       `json:"Titre"`
	Journal         string       `json:"Journal"`
	Date            string       `json:"Date"`
	URLImage        string       `json:"URLImage"`
	Contenu         string       `json:"Contenu"`
	SimilarArticles []similarDTO `json:"SimilarArticles"`
}

type listDTO struct {
	Articles *[]summaryDTO `json:"articles"`
}

// decodeList decodes a list or search response. A missing "articles" field is a
// FormatError; an empty array is a valid empty result.
func decodeList(op string, body []byte) ([]entity.ArticleSummary, error) {
	var dto listDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, &entity.FormatError{Op: op, Err: err}
	}
	if dto.Articles == nil {
		return nil, &entity.FormatError{Op: op, Field: "articles"}
	}

	out := make([]entity.ArticleSummary, 0, len(*dto.Articles))
	for _, a := range *dto.Articles {
		out = append(out, a.toEntity())
	}
	return out, nil
}

func (a summaryDTO) toEntity() entity.ArticleSummary {
	refs := make([]entity.SimilarRef, 0, len(a.SimilarArticles))
	for _, s := range a.SimilarArticles {
		refs = append(refs, entity.SimilarRef{
			ArticleID:   int64(s.ID),
			Title:       strings.TrimSpace(s.Titre),
			SourceName:  strings.TrimSpace(s.Journal),
			PublishedAt: parseOptionalDate(s.Date),
		})
	}
	return entity.ArticleSummary{
		ArticleID:   int64(a.ID),
		Title:       strings.TrimSpace(a.Titre),
		SourceName:  strings.TrimSpace(a.Journal),
		PublishedAt: parseDate(a.Date),
		ImageURL:    strings.TrimSpace(a.URLImage),
		Excerpt:     htmltext.ToText(a.Contenu),
		Similar:     entity.NormalizeSimilar(entity.EmbeddedSimilar(refs)),
	}
}

// decodeDetail decodes the detail record. Both similar-article shapes are
// accepted; the embedded sequence wins when present.
func decodeDetail(op string, body []byte) (entity.DetailedArticle, error) {
	if !gjson.ValidBytes(body) {
		return entity.DetailedArticle{}, &entity.FormatError{Op: op, Err: fmt.Errorf("invalid JSON")}
	}
	root := gjson.ParseBytes(body)
	if wrapped := root.Get("article"); wrapped.IsObject() {
		root = wrapped
	}
	if !root.IsObject() {
		return entity.DetailedArticle{}, &entity.FormatError{Op: op, Err: fmt.Errorf("expected an object")}
	}

	idField := root.Get("id_article")
	if !idField.Exists() {
		return entity.DetailedArticle{}, &entity.FormatError{Op: op, Field: "id_article"}
	}
	id, err := resultID(idField)
	if err != nil {
		return entity.DetailedArticle{}, &entity.FormatError{Op: op, Field: "id_article", Err: err}
	}
	title := root.Get("Titre")
	if !title.Exists() {
		return entity.DetailedArticle{}, &entity.FormatError{Op: op, Field: "Titre"}
	}

	return entity.DetailedArticle{
		ArticleID:   id,
		SourceName:  strings.TrimSpace(root.Get("Journal").String()),
		Title:       strings.TrimSpace(title.String()),
		PublishedAt: parseDate(root.Get("Date").String()),
		FullBody:    htmltext.ToText(root.Get("Contenu").String()),
		ImageURL:    strings.TrimSpace(root.Get("URLImage").String()),
		Excerpt:     htmltext.ToText(root.Get("Resume").String()),
		Similar:     entity.NormalizeSimilar(similarSource(root)),
	}, nil
}

func similarSource(root gjson.Result) entity.SimilarSource {
	// An empty embedded array carries nothing; the flattened fields may still.
	if embedded := root.Get("SimilarArticles"); embedded.IsArray() && len(embedded.Array()) > 0 {
		var refs entity.EmbeddedSimilar
		embedded.ForEach(func(_, item gjson.Result) bool {
			id, _ := resultID(item.Get("id_article"))
			refs = append(refs, entity.SimilarRef{
				ArticleID:   id,
				Title:       strings.TrimSpace(item.Get("Titre").String()),
				SourceName:  strings.TrimSpace(item.Get("Journal").String()),
				PublishedAt: parseOptionalDate(item.Get("Date").String()),
			})
			return true
		})
		return refs
	}

	var flat entity.FlattenedSimilar
	for i := range flat {
		n := strconv.Itoa(i + 1)
		// An unparseable slot id is treated as absent and dropped by normalization.
		id, _ := resultID(root.Get("id_article" + n))
		flat[i] = entity.SimilarRef{
			ArticleID:   id,
			Title:       strings.TrimSpace(root.Get("title_id_article" + n).String()),
			SourceName:  strings.TrimSpace(root.Get("source_id_article" + n).String()),
			PublishedAt: parseOptionalDate(root.Get("date_id_article" + n).String()),
		}
	}
	return flat
}

// resultID reads an id that may be a number, a numeric string or null.
func resultID(r gjson.Result) (int64, error) {
	switch r.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		return r.Int(), nil
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseInt(s, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected %s", r.Type)
	}
}

// parseDate accepts the loose date formats the API emits. An empty or
// unparseable value yields the zero time rather than an error.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseOptionalDate(s string) *time.Time {
	t := parseDate(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
