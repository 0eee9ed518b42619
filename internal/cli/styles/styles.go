package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Amber     = lipgloss.Color("#E5A00D")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
)

// Status glyphs (unstyled)
const (
	WarningChar = "⚠"
	SuccessChar = "✓"
	BookChar    = "📚"
)

// Styles are bound to one output so color is only emitted to terminals.
type Styles struct {
	Renderer *lipgloss.Renderer

	Title   lipgloss.Style
	Dim     lipgloss.Style
	Accent  lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style
	ReadCell    lipgloss.Style
	UnreadCell  lipgloss.Style
}

// New builds the style set for w.
func New(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Padding(0, 1)

	return &Styles{
		Renderer: r,

		Title:   r.NewStyle().Foreground(White).Bold(true),
		Dim:     r.NewStyle().Foreground(DimGray),
		Accent:  r.NewStyle().Foreground(Amber),
		Warning: r.NewStyle().Foreground(Red),
		Success: r.NewStyle().Foreground(Green),

		TableHeader: cell.Foreground(Amber).Bold(true),
		TableCell:   cell.Foreground(LightGray),
		TableBorder: r.NewStyle().Foreground(DimGray),
		ReadCell:    cell.Foreground(Green),
		UnreadCell:  cell.Foreground(DimGray),
	}
}
