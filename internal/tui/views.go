package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/crewdesk/crewdesk/internal/employee"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	formDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))
	formHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
	tableHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))
	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	journalTextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#AAAAAA"))
)

// View renders the current screen.
func (a *App) View() string {
	var content string
	switch a.state {
	case stateMenu:
		content = a.mainMenu.View()
	case statePicker:
		content = a.picker.View()
	case stateForm:
		content = panelStyle.Render(a.form.View())
	case stateTable:
		content = a.renderTable()
	case statePayroll:
		content = a.renderPayroll()
	}

	sections := []string{
		headerStyle.Render("⬡ CREWDESK · " + filepath.Base(a.config.RosterPath())),
		content,
	}
	if a.statusMsg != "" {
		style := statusOKStyle
		if a.statusErr {
			style = statusErrStyle
		}
		sections = append(sections, style.Render(a.statusMsg))
	}
	if journal := a.renderJournalPanel(); journal != "" {
		sections = append(sections, journal)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTable prints the roster listing in the fixed-width layout:
// id, name, age, salary, role, join date and derived experience.
func (a *App) renderTable() string {
	now := a.clock()
	var b strings.Builder
	b.WriteString(tableHeadStyle.Render(a.tableTitle) + "\n\n")
	b.WriteString("ID  | Name            |Ag|    Salary | Role    | Joined     |Exp\n")
	b.WriteString("----+-----------------+--+-----------+---------+------------+---\n")
	if len(a.tableRows) == 0 {
		b.WriteString("(no employees)\n")
	}
	for _, e := range a.tableRows {
		b.WriteString(fmt.Sprintf("%-3d | %-15s |%2d| %9.2f | %-7s | %s |%2dy\n",
			e.ID(), e.Name(), e.Age(), e.Salary(), e.Role(),
			e.JoinDate().Format(time.DateOnly), e.ExperienceYears(now)))
	}
	b.WriteString("\n" + formHelpStyle.Render("enter/esc back"))
	return panelStyle.Render(b.String())
}

func (a *App) renderPayroll() string {
	var b strings.Builder
	b.WriteString(tableHeadStyle.Render("Payroll stats") + "\n\n")
	b.WriteString(fmt.Sprintf("Total payroll  %12.2f\n\n", a.store.TotalPayroll()))
	averages := a.store.AverageSalaryByRole()
	for _, role := range employee.Roles() {
		b.WriteString(fmt.Sprintf("Avg %-8s %12.2f\n", role.String(), averages[role]))
	}
	b.WriteString("\n" + formHelpStyle.Render("enter/esc back"))
	return panelStyle.Render(b.String())
}

func (a *App) renderJournalPanel() string {
	if a.journal == nil {
		return ""
	}
	lines := a.journal.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := tableHeadStyle.Render("LOG · " + filepath.Base(a.journal.Path()))
	body := journalTextStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(head + "\n" + body)
}
