package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"dewy/internal/logger"
	"dewy/internal/models"
	"dewy/internal/routine"
	"dewy/internal/utils"
)

type sessionState int

const (
	stateDay sessionState = iota
	stateConfirmReset
	stateAddProduct
)

type KeyMap struct {
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Sort     key.Binding
	Complete key.Binding
	Add      key.Binding
	Remove   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Complete, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.Today},
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Sort, k.Complete, k.Add, k.Remove, k.Reset},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "cursor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "cursor down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move product up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move product down"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "auto-sort"),
		),
		Complete: key.NewBinding(
			key.WithKeys(" ", "c"),
			key.WithHelp("space", "toggle complete"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add product"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove from day"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset day"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type Model struct {
	tracker *routine.Tracker
	commit  func() error

	state   sessionState
	date    string
	proj    routine.Projection
	cursor  int
	status  string
	keys    KeyMap
	help    help.Model
	width   int
	height  int
	loadErr error

	form       *huh.Form
	formName   string
	formTiming models.Timing
}

// NewModel builds the TUI over an already loaded tracker. commit is called
// after every mutation so the store never trails the screen.
func NewModel(tracker *routine.Tracker, commit func() error) Model {
	m := Model{
		tracker: tracker,
		commit:  commit,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}

	today, err := tracker.Today()
	if err != nil {
		m.loadErr = err
		return m
	}
	m.date = today
	m.reproject()
	return m
}

// reproject refreshes the cached projection for the current date.
func (m *Model) reproject() {
	proj, err := m.tracker.Project(m.date)
	if err != nil {
		m.loadErr = err
		return
	}
	m.proj = proj
	if n := len(m.dayList()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// dayList is the product list the cursor walks: everything scheduled on the
// date regardless of timing, in display order.
func (m *Model) dayList() []models.Product {
	return m.proj.DayList()
}

func (m *Model) shiftDate(days int) {
	t, err := utils.ParseDate(m.date)
	if err != nil {
		m.loadErr = err
		return
	}
	m.date = utils.DateKey(t.AddDate(0, 0, days))
	m.cursor = 0
	m.reproject()
}

// newAddProductForm builds the quick-add form. The product type comes from
// the keyword rules on submit so the form stays two fields.
func (m *Model) newAddProductForm() *huh.Form {
	m.formName = ""
	m.formTiming = models.TimingEvening
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product name").
				Value(&m.formName),
			huh.NewSelect[models.Timing]().
				Title("Timing").
				Options(
					huh.NewOption("morning", models.TimingMorning),
					huh.NewOption("evening", models.TimingEvening),
					huh.NewOption("morning + evening", models.TimingBoth),
				).
				Value(&m.formTiming),
		),
	)
}

// save commits to storage and surfaces failures in the status line.
func (m *Model) save() {
	if err := m.commit(); err != nil {
		logger.Error("Failed to save changes", "error", err)
		m.status = "save failed: " + err.Error()
	}
}
