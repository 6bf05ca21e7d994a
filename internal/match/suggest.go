package match

import (
	"sort"
)

// DefaultMinScore is the lowest NameScore a known name needs to be suggested.
const DefaultMinScore = 0.5

// DefaultMaxSuggestions bounds the suggestions attached to a diagnostic.
const DefaultMaxSuggestions = 3

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit known names resembling name, best first.
// Ties are broken alphabetically. Exact matches are not suggested.
func Suggest(name string, known []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	var ranked []scored

	seen := make(map[string]bool, len(known))

	for _, k := range known {
		if k == name || seen[k] {
			continue
		}

		seen[k] = true

		if s := NameScore(name, k); s >= DefaultMinScore {
			ranked = append(ranked, scored{name: k, score: s})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	result := make([]string, 0, min(limit, len(ranked)))
	for i := 0; i < len(ranked) && i < limit; i++ {
		result = append(result, ranked[i].name)
	}

	return result
}
