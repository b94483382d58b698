package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(bannerStyle.Render(banner))
	b.WriteString("\n\n")
	b.WriteString(m.cardsView())
	b.WriteString("\n")
	b.WriteString(m.tabBarView())
	b.WriteString("\n")

	switch m.state {
	case stateLoading:
		b.WriteString(fmt.Sprintf("\n %s Loading...\n", m.spinner.View()))
	case stateCreating:
		if m.form != nil {
			b.WriteString(m.form.form.View())
		}
	default:
		b.WriteString(m.tables[m.activeView].View())
		b.WriteString("\n")
	}

	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.helpView())

	return b.String()
}

// cardsView renders one metric card per dashboard total.
func (m Model) cardsView() string {
	totals := m.service.Totals()

	cards := []struct {
		label string
		value int
	}{
		{"Branches", totals.Branches},
		{"Courses", totals.Courses},
		{"Instructors", totals.Instructors},
		{"Batches", totals.Batches},
	}

	rendered := make([]string, len(cards))
	for i, c := range cards {
		content := cardValueStyle.Render(fmt.Sprintf("%d", c.value)) + "\n" + cardLabelStyle.Render(c.label)
		rendered[i] = cardStyle.Render(content)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) tabBarView() string {
	tabs := make([]string, viewCount)
	for v := ViewType(0); v < viewCount; v++ {
		label := fmt.Sprintf("%s (%d)", v, m.collectionLen(v))
		if v == m.activeView {
			tabs[v] = tabActiveStyle.Render(label)
		} else {
			tabs[v] = tabInactiveStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) collectionLen(v ViewType) int {
	switch v {
	case ViewBranches:
		return m.service.Branches.Len()
	case ViewCourses:
		return m.service.Courses.Len()
	case ViewInstructors:
		return m.service.Instructors.Len()
	case ViewBatches:
		return m.service.Batches.Len()
	default:
		return 0
	}
}

// statusView renders the toast line, or the pending confirmation prompt.
func (m Model) statusView() string {
	if m.state == stateConfirming {
		return confirmStyle.Render(m.pending.Confirm + " [y/n]")
	}
	if m.toastText == "" {
		return ""
	}
	if m.toastOK {
		return toastOkStyle.Render("✔ " + m.toastText)
	}
	return toastErrStyle.Render("✘ " + m.toastText)
}

func (m Model) helpView() string {
	return m.help.ShortHelpView(m.keys)
}
