package dealers

import (
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"ticket-classifier-go/internal/types"
)

// fuzzyThreshold is the minimum token-set-ratio score (0-100) for a fuzzy
// match to be trusted. Below it the resolver reports "no match" instead of
// the best available guess.
const fuzzyThreshold = 90

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// NormalizeName lowercases, strips non-alphanumerics and token-sorts a dealer
// name. Token sorting makes "Toyota Laval" and "Laval Toyota" the same key on
// purpose; the reference data is full of word-order variants.
func NormalizeName(raw string) string {
	cleaned := nonAlnum.ReplaceAllString(strings.ToLower(raw), "")
	tokens := strings.Fields(cleaned)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Resolve tries each candidate in order against the table: first an exact
// normalized lookup over all candidates, then a fuzzy pass accepting only
// high-confidence scores. A zero-value DealerRecord means no candidate
// resolved; that is the expected "unknown dealer" outcome, not an error.
func (t *Table) Resolve(candidates []string) types.DealerRecord {
	for _, name := range candidates {
		if rec, ok := t.byNorm[NormalizeName(name)]; ok {
			return rec
		}
	}

	for _, name := range candidates {
		norm := NormalizeName(name)
		if norm == "" {
			continue
		}
		bestKey, bestScore := "", 0
		for _, key := range t.keys {
			if score := fuzzy.TokenSetRatio(norm, key); score > bestScore {
				bestKey, bestScore = key, score
			}
		}
		if bestScore >= fuzzyThreshold {
			return t.byNorm[bestKey]
		}
	}

	return types.DealerRecord{}
}
