// Package cli runs the interactive menu over any reader and writer.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmcdole/bookshelf/internal/cli/styles"
	"github.com/mmcdole/bookshelf/internal/domain"
	"github.com/mmcdole/bookshelf/internal/library"
)

var menuItems = []string{
	"Add a book",
	"Edit a book",
	"Remove a book",
	"Search for a book",
	"Display all books",
	"Display statistics",
	"Exit",
}

// Options tune a Session
type Options struct {
	Suggestions int  // Max "did you mean" titles on a lookup miss
	Quiet       bool // Skip the welcome banner (non-interactive input)
	Logger      *slog.Logger
}

// Session drives one library through the numbered menu until the user
// exits or input ends.
type Session struct {
	svc    *library.Service
	in     *bufio.Reader
	out    io.Writer
	styles *styles.Styles
	opts   Options
	logger *slog.Logger
}

// NewSession creates a session reading commands from in and writing to out.
func NewSession(svc *library.Service, in io.Reader, out io.Writer, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		svc:    svc,
		in:     bufio.NewReader(in),
		out:    out,
		styles: styles.New(out),
		opts:   opts,
		logger: logger,
	}
}

// Run loads the library and serves the menu. It returns after the exit
// choice or end of input, both of which save first. The only error is a
// failed final save or a broken input stream.
func (s *Session) Run() error {
	if err := s.svc.Load(); err != nil {
		s.warn("Library file could not be read. Starting with an empty library.")
	}

	if !s.opts.Quiet {
		s.println()
		s.println(s.styles.Title.Render("📖 Welcome to your Personal Library Manager!"))
	}

	for {
		s.renderMenu()
		choice, err := s.prompt("Enter your choice: ")
		if err != nil {
			return s.finish(err)
		}

		switch choice {
		case "1":
			err = s.addBook()
		case "2":
			err = s.editBook()
		case "3":
			err = s.removeBook()
		case "4":
			err = s.searchBooks()
		case "5":
			s.displayBooks()
		case "6":
			s.renderStats(s.svc.Statistics())
		case "7":
			return s.exit()
		default:
			s.warn(fmt.Sprintf("Invalid choice. Please enter a number between 1 and %d.", len(menuItems)))
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

// finish handles a prompt error: end of input exits normally.
func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.logger.Debug("input closed, exiting")
		return s.exit()
	}
	s.logger.Error("failed to read input", "error", err)
	if saveErr := s.svc.Save(); saveErr != nil {
		return errors.Join(err, saveErr)
	}
	return fmt.Errorf("failed to read input: %w", err)
}

func (s *Session) exit() error {
	if err := s.svc.Save(); err != nil {
		s.warn("Library could not be saved.")
		return err
	}
	s.println(s.styles.Success.Render("📁 Library saved to file. Goodbye!"))
	return nil
}

func (s *Session) addBook() error {
	title, err := s.prompt("Enter the book title: ")
	if err != nil {
		return err
	}
	if s.svc.Exists(title) {
		s.warn("This book already exists in your library.")
		return nil
	}

	req := domain.AddRequest{Title: title}
	if req.Author, err = s.prompt("Enter the author: "); err != nil {
		return err
	}
	if req.Year, err = s.prompt("Enter the publication year: "); err != nil {
		return err
	}
	if req.Genre, err = s.prompt("Enter the genre: "); err != nil {
		return err
	}

	if err := s.svc.Validate(req); err != nil {
		s.reportAddError(err)
		return nil
	}

	if req.Read, err = s.promptYesNo("Have you read this book? (yes/no): "); err != nil {
		return err
	}

	if _, err := s.svc.Add(req); err != nil {
		s.reportAddError(err)
		return nil
	}
	s.success("Book added successfully!")
	return nil
}

func (s *Session) reportAddError(err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateTitle):
		s.warn("This book already exists in your library.")
	case errors.Is(err, domain.ErrInvalidInput):
		s.warn("Invalid input. Title, author, and year are required.")
	default:
		s.reportSaveError(err)
	}
}

func (s *Session) editBook() error {
	title, err := s.prompt("Enter the title of the book to edit: ")
	if err != nil {
		return err
	}
	book, err := s.svc.Find(title)
	if err != nil {
		s.warn("Book not found.")
		s.suggest(title)
		return nil
	}
	s.println("Editing book:", book.String())

	const keep = " (press Enter to keep unchanged): "
	var req domain.EditRequest
	if req.Title, err = s.prompt("Enter new title" + keep); err != nil {
		return err
	}
	if req.Author, err = s.prompt("Enter new author" + keep); err != nil {
		return err
	}
	if req.Year, err = s.prompt("Enter new year" + keep); err != nil {
		return err
	}
	if req.Genre, err = s.prompt("Enter new genre" + keep); err != nil {
		return err
	}
	read, err := s.prompt("Have you read this book? (yes/no, press Enter to keep unchanged): ")
	if err != nil {
		return err
	}
	req.Read = strings.ToLower(read)

	if _, err := s.svc.Edit(title, req); err != nil {
		s.reportSaveError(err)
		return nil
	}
	s.success("Book updated successfully!")
	return nil
}

func (s *Session) removeBook() error {
	title, err := s.prompt("Enter the title of the book to remove: ")
	if err != nil {
		return err
	}
	if _, err := s.svc.Remove(title); err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			s.warn("Book not found.")
			s.suggest(title)
			return nil
		}
		s.reportSaveError(err)
		return nil
	}
	s.success("Book removed successfully!")
	return nil
}

func (s *Session) searchBooks() error {
	s.println("Search by:\n1. Title\n2. Author\n3. Fuzzy (title)")
	choice, err := s.prompt("Search for a book: ")
	if err != nil {
		return err
	}

	var mode domain.SearchMode
	switch choice {
	case "1":
		mode = domain.SearchByTitle
	case "2":
		mode = domain.SearchByAuthor
	case "3":
		mode = domain.SearchFuzzy
	default:
		s.warn("Invalid choice. Please enter 1 for Title, 2 for Author, or 3 for Fuzzy.")
		return nil
	}

	keyword, err := s.prompt("Enter the title/author to search: ")
	if err != nil {
		return err
	}

	matches, err := s.svc.Search(mode, keyword)
	if err != nil {
		s.warn("No matching books found.")
		if mode == domain.SearchByTitle {
			s.suggest(keyword)
		}
		return nil
	}
	s.renderBooks("Matching Books:", matches)
	return nil
}

func (s *Session) displayBooks() {
	books, err := s.svc.List()
	if err != nil {
		s.warn("Your library is empty.")
		return
	}
	s.renderBooks("Your Library:", books)
}

func (s *Session) reportSaveError(err error) {
	s.warn(fmt.Sprintf("Changes are kept in memory but could not be saved: %v", err))
}

// prompt writes label and reads one trimmed line. A final line without a
// newline is still returned; io.EOF only comes back once input is exhausted.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptYesNo asks until the answer is "yes" or "no", in any case.
func (s *Session) promptYesNo(label string) (bool, error) {
	for {
		answer, err := s.prompt(label)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
		s.warn("Invalid input. Please enter 'yes' or 'no'.")
	}
}
