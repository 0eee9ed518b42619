package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns up to limit titles that look like query, closest first.
// Subsequence matches rank ahead of typo matches.
func Suggest(query string, titles []string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 || len(titles) == 0 {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	seen := make(map[int]bool, len(ranks))
	var out []string
	for _, r := range ranks {
		if len(out) == limit {
			return out
		}
		seen[r.OriginalIndex] = true
		out = append(out, titles[r.OriginalIndex])
	}

	// Fall back to edit distance for transposed or mistyped letters
	type near struct {
		index    int
		distance int
	}
	lowerQuery := strings.ToLower(query)
	maxDistance := typoBudget(lowerQuery)
	var typos []near
	for i, title := range titles {
		if seen[i] {
			continue
		}
		d := fuzzy.LevenshteinDistance(lowerQuery, strings.ToLower(title))
		if d <= maxDistance {
			typos = append(typos, near{index: i, distance: d})
		}
	}
	sort.SliceStable(typos, func(i, j int) bool {
		return typos[i].distance < typos[j].distance
	})
	for _, n := range typos {
		if len(out) == limit {
			break
		}
		out = append(out, titles[n.index])
	}
	return out
}

// typoBudget allows one edit per four characters, and at least one swapped pair.
func typoBudget(query string) int {
	return max(2, len([]rune(query))/4)
}
