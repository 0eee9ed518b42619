package domain

// Persister mirrors the library to durable storage.
// Load and Save always move the full ordered sequence.
type Persister interface {
	// Load returns the stored books in order. A missing backing file is an
	// empty library, not an error.
	Load() ([]Book, error)

	// Save replaces the stored library with books.
	Save(books []Book) error

	Close() error
}
