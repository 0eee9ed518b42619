package store

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/bookshelf/internal/domain"
)

// Storage backend names
const (
	BackendText = "text"
	BackendBolt = "bolt"
)

// Open returns the backend named by backend.
func Open(backend, path string, logger *slog.Logger) (domain.Persister, error) {
	switch backend {
	case "", BackendText:
		return NewTextFile(path, logger), nil
	case BackendBolt:
		return OpenBolt(path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
