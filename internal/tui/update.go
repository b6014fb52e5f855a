package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"dewy/internal/classifier"
	"dewy/internal/models"
	"dewy/internal/routine"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
	}

	// The add form owns every message while it is on screen.
	if m.state == stateAddProduct && m.form != nil {
		return m.updateAddProduct(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.state == stateConfirmReset {
			return m.updateConfirmReset(keyMsg)
		}
		return m.updateDay(keyMsg)
	}

	return m, nil
}

func (m Model) updateDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDate(-1)

	case key.Matches(msg, m.keys.NextDay):
		m.shiftDate(1)

	case key.Matches(msg, m.keys.Today):
		if today, err := m.tracker.Today(); err == nil {
			m.date = today
			m.cursor = 0
			m.reproject()
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.dayList())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.MoveUp):
		m.moveCursorProduct(routine.DirectionUp)

	case key.Matches(msg, m.keys.MoveDown):
		m.moveCursorProduct(routine.DirectionDown)

	case key.Matches(msg, m.keys.Sort):
		if err := m.tracker.AutoSortForDay(m.date, ""); err != nil {
			m.status = err.Error()
			break
		}
		m.save()
		m.reproject()
		m.status = "sorted"

	case key.Matches(msg, m.keys.Complete):
		done := !m.proj.Log.Completed
		if err := m.tracker.SetCompleted(m.date, done); err != nil {
			m.status = err.Error()
			break
		}
		m.save()
		m.reproject()
		if done {
			m.status = "routine completed"
		} else {
			m.status = "completion cleared"
		}

	case key.Matches(msg, m.keys.Add):
		m.form = m.newAddProductForm()
		m.state = stateAddProduct
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Remove):
		list := m.dayList()
		if m.cursor >= len(list) {
			break
		}
		p := list[m.cursor]
		if err := m.tracker.RemoveFromDay(m.date, p.ID); err != nil {
			m.status = err.Error()
			break
		}
		m.save()
		m.reproject()
		m.status = fmt.Sprintf("removed %s", p.Name)

	case key.Matches(msg, m.keys.Reset):
		if m.proj.HasCustomRoutine() {
			m.state = stateConfirmReset
		} else {
			m.status = "this day already follows the catalog"
		}
	}

	return m, nil
}

func (m Model) updateAddProduct(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		name := strings.TrimSpace(m.formName)
		m.form = nil
		m.state = stateDay
		if name == "" {
			m.status = "no product name given"
			return m, nil
		}
		p := models.Product{
			Name:        name,
			Timing:      m.formTiming,
			ProductType: classifier.SuggestType(name),
			Days:        models.AllWeek(),
		}
		added, err := m.tracker.AddProduct(p)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.save()
		m.reproject()
		m.status = fmt.Sprintf("added %s as %s", added.Name, added.ProductType)
		return m, nil

	case huh.StateAborted:
		m.form = nil
		m.state = stateDay
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.tracker.ResetRoutine(m.date)
		m.save()
		m.reproject()
		m.status = "day reset to the catalog"
		m.state = stateDay
	case "n", "N", "esc":
		m.state = stateDay
	}
	return m, nil
}

// moveCursorProduct moves the product under the cursor one step and keeps the
// cursor on it.
func (m *Model) moveCursorProduct(dir routine.Direction) {
	list := m.dayList()
	if m.cursor >= len(list) {
		return
	}
	p := list[m.cursor]

	if err := m.tracker.ReorderForDay(m.date, p.ID, dir); err != nil {
		m.status = err.Error()
		return
	}
	m.save()
	m.reproject()

	for i, q := range m.dayList() {
		if q.ID == p.ID {
			m.cursor = i
			break
		}
	}
}
