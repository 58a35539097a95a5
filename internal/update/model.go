package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/teamcal/internal/model"
	"github.com/sandeepkv93/teamcal/internal/store"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Month string
	Week  string
	Day   string
	Prev  string
	Next  string
	Today string
	Up    string
	Down  string
	Done  string
	Dark  string
	Help  string
	Quit  string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Options configures a Model. Zero values fall back to the defaults.
type Options struct {
	Context      context.Context
	Logger       log.FieldLogger
	WeekStart    time.Weekday
	PreviewLimit int
	Now          func() time.Time
}

// Model is the interactive calendar. It owns no task data itself; every
// read goes to the store and every change goes through it.
type Model struct {
	Store          *store.Store
	WeekStart      time.Weekday
	PreviewLimit   int
	Cursor         int
	SelectedTaskID string
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx          context.Context
	logger       log.FieldLogger
	now          func() time.Time
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// SetViewMsg switches the calendar mode, as the m/w/d keys do.
type SetViewMsg struct {
	Mode model.ViewMode
}

func NewModel(s *store.Store, opts Options) Model {
	m := Model{
		Store:        s,
		WeekStart:    opts.WeekStart,
		PreviewLimit: opts.PreviewLimit,
		ctx:          opts.Context,
		logger:       opts.Logger,
		now:          opts.Now,
		Keys: GlobalKeyMap{
			Month: "m",
			Week:  "w",
			Day:   "d",
			Prev:  "h",
			Next:  "l",
			Today: "t",
			Up:    "k",
			Down:  "j",
			Done:  "x",
			Dark:  "D",
			Help:  "?",
			Quit:  "q",
		},
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = log.StandardLogger()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.PreviewLimit <= 0 {
		m.PreviewLimit = 2
	}
	m.initBubbleComponents()
	m.syncSelection()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add 2024-03-04 09:00 09:30 Standup"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}
