package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/bookshelf/internal/domain"
)

// Match is a fuzzy search hit
type Match struct {
	Book           domain.Book
	Index          int   // Position in the library
	MatchedIndexes []int // Rune positions in the title that matched (for highlighting)
	Score          int   // Higher is better
}

// Fuzzy ranks books whose titles contain the query's characters in order.
// Results are sorted best first; ties keep library order.
func Fuzzy(query string, books []domain.Book) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(books) == 0 {
		return nil
	}

	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = strings.ToLower(b.Title)
	}

	found := fuzzy.Find(query, titles)
	if len(found) == 0 {
		return nil
	}

	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Book:           books[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return matches
}
