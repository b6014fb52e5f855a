package tui

import (
	"fmt"
	"strings"

	"dewy/internal/models"
)

func (m Model) View() string {
	if m.loadErr != nil {
		return docStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.loadErr))
	}

	var b strings.Builder

	title := fmt.Sprintf("%s (%s)", m.proj.Date, m.proj.Weekday)
	if m.proj.Theme != "" {
		title += "  " + m.proj.Theme
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	var tags []string
	if m.proj.IsRestDay {
		tags = append(tags, "rest day")
	}
	if m.proj.HasCustomRoutine() {
		tags = append(tags, "custom routine")
	}
	if m.proj.Log.Completed {
		tags = append(tags, completedStyle.Render("✓ completed"))
	}
	if m.proj.Description != "" {
		b.WriteString(subtitleStyle.Render(m.proj.Description))
		b.WriteString("\n")
	}
	if len(tags) > 0 {
		b.WriteString(subtitleStyle.Render(strings.Join(tags, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Device"))
	b.WriteString("\n")
	if len(m.proj.MachineModes) == 0 {
		b.WriteString(dimStyle.Render("  no device today"))
		b.WriteString("\n")
	} else {
		for _, mode := range m.proj.MachineModes {
			b.WriteString(fmt.Sprintf("  %s %s\n", mode.Name, dimStyle.Render(mode.Description)))
		}
	}
	b.WriteString("\n")

	if m.state == stateConfirmReset {
		b.WriteString(warningStyle.Render("Reset this day back to the global catalog? (y/n)"))
		b.WriteString("\n\n")
	}

	if m.state == stateAddProduct && m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n")
		return docStyle.Render(b.String())
	}

	list := m.dayList()
	morning := m.proj.Morning()
	b.WriteString(m.renderSection("Morning", morning, list))
	b.WriteString("\n")
	b.WriteString(m.renderSection("Evening", m.proj.Evening(), list))

	if m.proj.Log.Note != "" {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Journal"))
		b.WriteString("\n  ")
		b.WriteString(m.proj.Log.Note)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

// renderSection prints a scoped product list, marking the cursor by its
// position in the unscoped day list.
func (m Model) renderSection(heading string, products []models.Product, dayList []models.Product) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(heading))
	b.WriteString("\n")

	if len(products) == 0 {
		b.WriteString(dimStyle.Render("  nothing scheduled"))
		b.WriteString("\n")
		return b.String()
	}

	cursorID := ""
	if m.cursor < len(dayList) {
		cursorID = dayList[m.cursor].ID
	}

	for _, p := range products {
		line := fmt.Sprintf("%2d. %s %s", p.Order, p.Name, dimStyle.Render(string(p.ProductType)))
		if p.ID == cursorID {
			b.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
