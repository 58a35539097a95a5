package views

import "github.com/charmbracelet/lipgloss"

// Theme is a colour scheme. Dark and Light follow the persisted dark-mode flag.
type Theme struct {
	Name string

	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color
	Primary       lipgloss.Color
	Accent        lipgloss.Color
	Success       lipgloss.Color
	Error         lipgloss.Color
	Border        lipgloss.Color
	Selection     lipgloss.Color
	Today         lipgloss.Color
}

var Dark = Theme{
	Name:          "dark",
	Foreground:    lipgloss.Color("#e5e7eb"),
	ForegroundDim: lipgloss.Color("#6b7280"),
	Primary:       lipgloss.Color("#60a5fa"),
	Accent:        lipgloss.Color("#a78bfa"),
	Success:       lipgloss.Color("#34d399"),
	Error:         lipgloss.Color("#f87171"),
	Border:        lipgloss.Color("#374151"),
	Selection:     lipgloss.Color("#1e3a8a"),
	Today:         lipgloss.Color("#fbbf24"),
}

var Light = Theme{
	Name:          "light",
	Foreground:    lipgloss.Color("#111827"),
	ForegroundDim: lipgloss.Color("#9ca3af"),
	Primary:       lipgloss.Color("#2563eb"),
	Accent:        lipgloss.Color("#7c3aed"),
	Success:       lipgloss.Color("#059669"),
	Error:         lipgloss.Color("#dc2626"),
	Border:        lipgloss.Color("#d1d5db"),
	Selection:     lipgloss.Color("#dbeafe"),
	Today:         lipgloss.Color("#d97706"),
}

func ThemeFor(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// Styles are derived from a Theme once per render.
type Styles struct {
	Header    lipgloss.Style
	Panel     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Footer    lipgloss.Style
	Dim       lipgloss.Style
	Selected  lipgloss.Style
	Today     lipgloss.Style
	Completed lipgloss.Style
	Cell      lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(t.Success),
		Error:     lipgloss.NewStyle().Foreground(t.Error),
		Footer:    lipgloss.NewStyle().Foreground(t.ForegroundDim),
		Dim:       lipgloss.NewStyle().Foreground(t.ForegroundDim),
		Selected:  lipgloss.NewStyle().Bold(true).Background(t.Selection).Foreground(t.Foreground),
		Today:     lipgloss.NewStyle().Bold(true).Foreground(t.Today),
		Completed: lipgloss.NewStyle().Strikethrough(true).Foreground(t.ForegroundDim),
		Cell:      lipgloss.NewStyle().Width(cellWidth).Foreground(t.Foreground),
	}
}

// TaskStyle colours a task label with the task's own colour when it has one.
func (s Styles) TaskStyle(color string, completed bool) lipgloss.Style {
	if completed {
		return s.Completed
	}
	if color == "" {
		return s.Cell.UnsetWidth()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
