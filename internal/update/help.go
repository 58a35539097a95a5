package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/teamcal/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	global := toKeyBindings(m.globalBindings())
	calendar := toKeyBindings(m.calendarBindings())
	var plain []string
	for _, kb := range m.paletteBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     views.ModeLabel(m.Store.ViewMode()),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{calendar, global},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Dark, Action: "toggle dark mode"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) calendarBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Month + "/" + m.Keys.Week + "/" + m.Keys.Day, Action: "month/week/day"},
		{Key: m.Keys.Prev + "/" + m.Keys.Next, Action: "previous/next period"},
		{Key: m.Keys.Today, Action: "jump to today"},
		{Key: m.Keys.Down + "/" + m.Keys.Up, Action: "select task on focus day"},
		{Key: m.Keys.Done, Action: "toggle completed"},
	}
}

// paletteBindings document the command grammar, shown as plain lines.
func (m Model) paletteBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "add <date> <HH:MM> <HH:MM> <title>", Action: "new task"},
		{Key: "edit <task> [title:..] [desc:..] [color:#hex]", Action: "change task fields"},
		{Key: "move <task> <date> <HH:MM> <HH:MM>", Action: "reschedule a task"},
		{Key: "member <name> [role:<role>]", Action: "new team member"},
		{Key: "rename <member> [name] [role:..] [color:#hex]", Action: "change member fields"},
		{Key: "assign <task> <member>", Action: "add an assignee"},
		{Key: "unassign <task>", Action: "clear assignees"},
		{Key: "done <task>", Action: "mark completed"},
		{Key: "delete <task>", Action: "remove a task"},
		{Key: "drop <member>", Action: "remove a member"},
		{Key: "goto <date>", Action: "move focus"},
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
