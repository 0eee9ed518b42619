package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/mmcdole/bookshelf/internal/domain"
)

// DefaultPath is the backing file used when nothing else is configured.
const DefaultPath = "library.txt"

const (
	fieldSep   = "|"
	fieldCount = 5
	readYes    = "yes"
	readNo     = "no"

	fileMode os.FileMode = 0644
)

// TextFile persists the library as one pipe-delimited line per book:
//
//	title|author|year|genre|yes
type TextFile struct {
	path   string
	logger *slog.Logger
}

var _ domain.Persister = (*TextFile)(nil)

// NewTextFile creates a text backend for path.
func NewTextFile(path string, logger *slog.Logger) *TextFile {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TextFile{path: path, logger: logger}
}

// Path returns the backing file path.
func (t *TextFile) Path() string {
	return t.path
}

// Load reads the backing file. Lines that do not have exactly five fields,
// or whose year is not an integer, are skipped.
func (t *TextFile) Load() ([]domain.Book, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.logger.Debug("library file missing, starting empty", "path", t.path)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	var books []domain.Book
	skipped := 0
	lineNum := 0
	for line := range strings.Lines(string(data)) {
		lineNum++
		book, ok := parseLine(line)
		if !ok {
			skipped++
			t.logger.Debug("skipping malformed line", "path", t.path, "line", lineNum)
			continue
		}
		books = append(books, book)
	}

	t.logger.Info("loaded library", "path", t.path, "count", len(books), "skipped", skipped)
	return books, nil
}

// Save rewrites the whole file. The write goes through a temp file and a
// rename so a crash leaves either the old or the new library on disk.
func (t *TextFile) Save(books []domain.Book) error {
	var buf bytes.Buffer
	for _, b := range books {
		buf.WriteString(formatLine(b))
		buf.WriteByte('\n')
	}
	_, statErr := os.Stat(t.path)
	created := errors.Is(statErr, fs.ErrNotExist)
	if err := atomic.WriteFile(t.path, &buf); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSaveFailed, err)
	}
	// The temp file is 0600; a fresh library gets regular file permissions.
	// Existing files keep their mode across the rename.
	if created {
		if err := os.Chmod(t.path, fileMode); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrSaveFailed, err)
		}
	}
	t.logger.Debug("saved library", "path", t.path, "count", len(books))
	return nil
}

func (t *TextFile) Close() error {
	return nil
}

func parseLine(line string) (domain.Book, bool) {
	parts := strings.Split(strings.TrimSpace(line), fieldSep)
	if len(parts) != fieldCount {
		return domain.Book{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.Book{}, false
	}
	return domain.Book{
		Title:  parts[0],
		Author: parts[1],
		Year:   year,
		Genre:  parts[3],
		Read:   parts[4] == readYes,
	}, true
}

func formatLine(b domain.Book) string {
	read := readNo
	if b.Read {
		read = readYes
	}
	return strings.Join([]string{b.Title, b.Author, strconv.Itoa(b.Year), b.Genre, read}, fieldSep)
}
