package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme      Theme
	Header     string
	Sidebar    string
	Main       string
	Detail     string
	StatusLine string
	StatusErr  bool
	Palette    string
	Help       string
	Footer     string
}

func RenderApp(data AppData) string {
	st := data.Theme.Styles()
	left := st.Panel.Width(24).Render(data.Sidebar)
	main := st.Panel.Render(data.Main)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, main)

	lines := []string{st.Header.Render(data.Header), row}
	if data.Detail != "" {
		lines = append(lines, st.Panel.Render(data.Detail))
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Help != "" {
		lines = append(lines, st.Panel.Render(data.Help))
	}
	if data.StatusLine != "" {
		if data.StatusErr {
			lines = append(lines, st.Error.Render("error: "+data.StatusLine))
		} else {
			lines = append(lines, st.Status.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, st.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders a task description. Plain text is returned as-is
// when glamour fails.
func RenderMarkdown(md string, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s view):\n%s\n\n%s",
		data.Mode,
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
