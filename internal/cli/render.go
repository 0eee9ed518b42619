package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmcdole/bookshelf/internal/cli/styles"
	"github.com/mmcdole/bookshelf/internal/domain"
)

const statusCol = 5

func (s *Session) renderBooks(heading string, books []domain.Book) {
	rows := make([][]string, len(books))
	for i, b := range books {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			b.Title,
			b.Author,
			strconv.Itoa(b.Year),
			b.Genre,
			b.ReadStatus(),
		}
	}

	st := s.styles
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.TableBorder).
		Headers("#", "Title", "Author", "Year", "Genre", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.TableHeader
			case col == statusCol && row >= 0 && row < len(books):
				if books[row].Read {
					return st.ReadCell
				}
				return st.UnreadCell
			default:
				return st.TableCell
			}
		})

	s.println()
	s.println(st.Title.Render(styles.BookChar + " " + heading))
	s.println(t.String())
}

func (s *Session) renderStats(stats domain.Stats) {
	st := s.styles
	s.println()
	s.println(st.Title.Render("📊 Library Statistics:"))
	s.println(fmt.Sprintf("%s Total books: %d", styles.BookChar, stats.Total))
	s.println(fmt.Sprintf("📖 Books read: %d", stats.Read))
	s.println(st.Success.Render(fmt.Sprintf("%s Percentage read: %.2f%%", styles.SuccessChar, stats.PercentRead)))
}

func (s *Session) renderMenu() {
	st := s.styles
	s.println()
	s.println(st.Title.Render("📖 Personal Library Manager"))
	for i, item := range menuItems {
		s.println(fmt.Sprintf("%s %s", st.Accent.Render(strconv.Itoa(i+1)+"."), item))
	}
}

func (s *Session) warn(msg string) {
	s.println(s.styles.Warning.Render(styles.WarningChar + " " + msg))
}

func (s *Session) success(msg string) {
	s.println(s.styles.Success.Render(styles.SuccessChar + " " + msg))
}

func (s *Session) suggest(query string) {
	if s.opts.Suggestions <= 0 {
		return
	}
	titles := s.svc.Suggest(query, s.opts.Suggestions)
	if len(titles) == 0 {
		return
	}
	s.println(s.styles.Dim.Render("Did you mean: " + strings.Join(titles, ", ") + "?"))
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}
