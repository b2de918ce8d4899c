package entity

// SimilarSource is one of the two wire shapes carrying similar articles:
// EmbeddedSimilar (a sequence field) or FlattenedSimilar (five positional slots).
type SimilarSource interface {
	similarCandidates() []SimilarRef
}

// EmbeddedSimilar is the sequence form found on summaries and some detail records.
type EmbeddedSimilar []SimilarRef

func (e EmbeddedSimilar) similarCandidates() []SimilarRef { return e }

// FlattenedSimilar holds the id_articleN / title_id_articleN / source_id_articleN
// fields of a detail record. Slot i carries N = i+1; an absent slot has ArticleID 0.
type FlattenedSimilar [MaxSimilar]SimilarRef

func (f FlattenedSimilar) similarCandidates() []SimilarRef { return f[:] }

// NormalizeSimilar converts either wire shape into one ordered sequence.
// Entries without a positive ArticleID are dropped, the relative order of the
// remaining entries is kept, and at most MaxSimilar entries are returned.
// The result is never nil.
func NormalizeSimilar(src SimilarSource) []SimilarRef {
	out := make([]SimilarRef, 0, MaxSimilar)
	if src == nil {
		return out
	}
	for _, ref := range src.similarCandidates() {
		if ref.ArticleID <= 0 {
			continue
		}
		out = append(out, ref)
		if len(out) == MaxSimilar {
			break
		}
	}
	return out
}
