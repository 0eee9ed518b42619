package domain

import "errors"

// Sentinel errors for library operations
var (
	// ErrInvalidInput indicates a missing title/author/year or a non-integer year
	ErrInvalidInput = errors.New("invalid input: title, author, and year are required")

	// ErrDuplicateTitle indicates a book with the same title (any case) already exists
	ErrDuplicateTitle = errors.New("book already exists in the library")

	// ErrBookNotFound indicates no book matched the requested title
	ErrBookNotFound = errors.New("book not found")

	// ErrNoMatches indicates a search returned nothing
	ErrNoMatches = errors.New("no matching books found")

	// ErrLibraryEmpty indicates there is nothing to list
	ErrLibraryEmpty = errors.New("library is empty")

	// ErrLoadFailed indicates the backing file could not be read
	ErrLoadFailed = errors.New("library file could not be read")

	// ErrSaveFailed indicates the backing file could not be written
	ErrSaveFailed = errors.New("library file could not be written")
)
