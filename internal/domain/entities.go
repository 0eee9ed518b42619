package domain

import (
	"fmt"
	"math"
)

// Book is a single record in the library
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"` // Negative for BCE
	Genre  string `json:"genre"`
	Read   bool   `json:"read"`
}

// ReadStatus returns the display label for the read flag
func (b Book) ReadStatus() string {
	if b.Read {
		return "Read"
	}
	return "Unread"
}

// String renders the book the way list and search output show it
func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%d) - %s - %s", b.Title, b.Author, b.Year, b.Genre, b.ReadStatus())
}

// Stats summarizes read progress over the library
type Stats struct {
	Total       int
	Read        int
	PercentRead float64 // Rounded to two decimals, 0 for an empty library
}

// ComputeStats counts books and read books.
func ComputeStats(books []Book) Stats {
	stats := Stats{Total: len(books)}
	for _, b := range books {
		if b.Read {
			stats.Read++
		}
	}
	if stats.Total > 0 {
		pct := float64(stats.Read) / float64(stats.Total) * 100
		stats.PercentRead = math.Round(pct*100) / 100
	}
	return stats
}

// SearchMode selects which field a search compares against
type SearchMode int

const (
	SearchByTitle SearchMode = iota
	SearchByAuthor
	SearchFuzzy
)

func (m SearchMode) String() string {
	switch m {
	case SearchByTitle:
		return "title"
	case SearchByAuthor:
		return "author"
	case SearchFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// AddRequest carries raw user input for a new book.
// Year stays a string so validation can reject non-numeric input.
type AddRequest struct {
	Title  string
	Author string
	Year   string
	Genre  string
	Read   bool
}

// EditRequest carries raw replacement values. Empty fields keep the current value.
type EditRequest struct {
	Title  string
	Author string
	Year   string // Only applied when made of digits
	Genre  string
	Read   string // Only applied when exactly "yes" or "no"
}
