// Package library holds the in-memory book collection and keeps it
// mirrored to a persistence backend after every mutation.
package library

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/bookshelf/internal/domain"
	"github.com/mmcdole/bookshelf/internal/search"
)

var (
	// Years on add: digits with an optional leading minus
	signedYearRe = regexp.MustCompile(`^-?[0-9]+$`)
	// Years on edit: digits only, anything else leaves the year alone
	unsignedYearRe = regexp.MustCompile(`^[0-9]+$`)
)

// Service owns the ordered library and its backend.
type Service struct {
	books  []domain.Book
	store  domain.Persister
	logger *slog.Logger
}

// NewService creates an empty library backed by store. Call Load to read
// what is already stored.
func NewService(store domain.Persister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Load replaces the in-memory library with the stored one. On failure the
// library is left empty and the error is returned for the caller to report.
func (s *Service) Load() error {
	books, err := s.store.Load()
	if err != nil {
		s.books = nil
		s.logger.Warn("failed to load library, starting empty", "error", err)
		return err
	}
	s.books = books
	return nil
}

// Save persists the full library.
func (s *Service) Save() error {
	if err := s.store.Save(s.books); err != nil {
		s.logger.Error("failed to save library", "error", err)
		return err
	}
	return nil
}

// Len returns the number of books.
func (s *Service) Len() int {
	return len(s.books)
}

// Books returns a copy of the library in order.
func (s *Service) Books() []domain.Book {
	out := make([]domain.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Titles returns every title in library order.
func (s *Service) Titles() []string {
	titles := make([]string, len(s.books))
	for i, b := range s.books {
		titles[i] = b.Title
	}
	return titles
}

// Exists reports whether a book with title (any case) is present.
func (s *Service) Exists(title string) bool {
	return s.indexOf(title) >= 0
}

// Find returns the first book whose title matches (any case).
func (s *Service) Find(title string) (domain.Book, error) {
	i := s.indexOf(title)
	if i < 0 {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return s.books[i], nil
}

// Add validates req and appends a new book. Title, author, and an integer
// year are required; a title already present in any case is rejected.
// The book stays in memory even when the save fails.
func (s *Service) Add(req domain.AddRequest) (domain.Book, error) {
	year, err := s.validate(req)
	if err != nil {
		return domain.Book{}, err
	}

	book := domain.Book{
		Title:  req.Title,
		Author: req.Author,
		Year:   year,
		Genre:  req.Genre,
		Read:   req.Read,
	}
	s.books = append(s.books, book)
	s.logger.Info("added book", "title", book.Title)

	return book, s.Save()
}

// Validate runs the checks Add would, without adding. Read status is not
// part of validation.
func (s *Service) Validate(req domain.AddRequest) error {
	_, err := s.validate(req)
	return err
}

func (s *Service) validate(req domain.AddRequest) (int, error) {
	if s.Exists(req.Title) {
		s.logger.Debug("rejecting duplicate title", "title", req.Title)
		return 0, domain.ErrDuplicateTitle
	}
	if req.Title == "" || req.Author == "" || !signedYearRe.MatchString(req.Year) {
		return 0, domain.ErrInvalidInput
	}
	year, err := strconv.Atoi(req.Year)
	if err != nil {
		return 0, fmt.Errorf("%w: year %q out of range", domain.ErrInvalidInput, req.Year)
	}
	return year, nil
}

// Edit updates the first book matching title in place. Empty fields keep
// their current value. A year is only taken when it is all digits, and a
// read status only when it is exactly "yes" or "no"; other values are
// silently ignored.
func (s *Service) Edit(title string, req domain.EditRequest) (domain.Book, error) {
	i := s.indexOf(title)
	if i < 0 {
		return domain.Book{}, domain.ErrBookNotFound
	}

	book := &s.books[i]
	if req.Title != "" {
		book.Title = req.Title
	}
	if req.Author != "" {
		book.Author = req.Author
	}
	if unsignedYearRe.MatchString(req.Year) {
		if year, err := strconv.Atoi(req.Year); err == nil {
			book.Year = year
		}
	}
	if req.Genre != "" {
		book.Genre = req.Genre
	}
	switch req.Read {
	case "yes":
		book.Read = true
	case "no":
		book.Read = false
	}
	s.logger.Info("edited book", "title", title, "new_title", book.Title)

	return *book, s.Save()
}

// Remove deletes the first book matching title.
func (s *Service) Remove(title string) (domain.Book, error) {
	i := s.indexOf(title)
	if i < 0 {
		return domain.Book{}, domain.ErrBookNotFound
	}

	removed := s.books[i]
	s.books = append(s.books[:i], s.books[i+1:]...)
	s.logger.Info("removed book", "title", removed.Title)

	return removed, s.Save()
}

// Search returns books in library order whose title or author equals
// keyword, ignoring case. SearchFuzzy ranks titles by fuzzy match instead.
func (s *Service) Search(mode domain.SearchMode, keyword string) ([]domain.Book, error) {
	var matches []domain.Book

	switch mode {
	case domain.SearchByTitle:
		for _, b := range s.books {
			if strings.EqualFold(b.Title, keyword) {
				matches = append(matches, b)
			}
		}
	case domain.SearchByAuthor:
		for _, b := range s.books {
			if strings.EqualFold(b.Author, keyword) {
				matches = append(matches, b)
			}
		}
	case domain.SearchFuzzy:
		for _, m := range search.Fuzzy(keyword, s.books) {
			matches = append(matches, m.Book)
		}
	default:
		return nil, fmt.Errorf("unknown search mode %v", mode)
	}

	s.logger.Debug("search", "mode", mode, "keyword", keyword, "count", len(matches))
	if len(matches) == 0 {
		return nil, domain.ErrNoMatches
	}
	return matches, nil
}

// List returns the whole library, or ErrLibraryEmpty.
func (s *Service) List() ([]domain.Book, error) {
	if len(s.books) == 0 {
		return nil, domain.ErrLibraryEmpty
	}
	return s.Books(), nil
}

// Statistics counts total and read books.
func (s *Service) Statistics() domain.Stats {
	return domain.ComputeStats(s.books)
}

// Suggest returns up to limit titles close to title, for lookup misses.
func (s *Service) Suggest(title string, limit int) []string {
	return search.Suggest(title, s.Titles(), limit)
}

func (s *Service) indexOf(title string) int {
	for i, b := range s.books {
		if strings.EqualFold(b.Title, title) {
			return i
		}
	}
	return -1
}

// IsPersistError reports whether err came from the backend rather than
// from validation or lookup.
func IsPersistError(err error) bool {
	return errors.Is(err, domain.ErrSaveFailed) || errors.Is(err, domain.ErrLoadFailed)
}
