// internal/tui/app.go
//
// The interactive shell for crewdesk, built on bubbletea's Elm
// architecture: the App model holds all state, Update reacts to
// messages, View renders the current screen. Every roster operation
// goes through the store; this layer only collects input and prints.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crewdesk/crewdesk/internal/codec"
	"github.com/crewdesk/crewdesk/internal/config"
	"github.com/crewdesk/crewdesk/internal/employee"
	"github.com/crewdesk/crewdesk/internal/logging"
	"github.com/crewdesk/crewdesk/internal/roster"
)

// appState represents which screen we're on.
type appState int

const (
	stateMenu    appState = iota // Main menu with the roster operations
	stateForm                    // Collecting field values for an operation
	statePicker                  // Small choice list (role, sort key, raise scope)
	stateTable                   // Read-only roster listing
	statePayroll                 // Payroll totals and per-role averages
)

// AppOption customizes App construction for tests.
type AppOption func(*App)

// WithClock overrides the time source used for validation, experience
// math and CSV loads.
func WithClock(clock employee.Clock) AppOption {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// menuItem implements list.Item for the main menu and pickers.
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// App is the main application model.
type App struct {
	state   appState
	config  *config.Config
	store   *roster.Store
	clock   employee.Clock
	diag    *logging.Logger
	journal *logging.Journal

	mainMenu list.Model
	picker   list.Model
	onPick   func(index int)
	form     *form

	tableTitle string
	tableRows  []*employee.Employee

	statusMsg string
	statusErr bool

	width  int
	height int
}

// NewApp creates the App, loads configuration and, when configured,
// auto-loads the roster CSV.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}

	app := &App{
		state:  stateMenu,
		config: cfg,
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.store = roster.New(app.clock)

	if diag, err := logging.New(projectDir); err == nil {
		app.diag = diag
	}
	if journal, err := logging.NewJournal(filepath.Join(cfg.LogsDir(), "journey.log")); err == nil {
		app.journal = journal
		journal.Note("Session opened")
	}

	app.mainMenu = list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	app.mainMenu.Title = "⬡ CREWDESK"
	app.mainMenu.SetShowStatusBar(false)
	app.mainMenu.SetFilteringEnabled(false)
	app.picker = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	app.picker.SetShowStatusBar(false)
	app.picker.SetFilteringEnabled(false)

	app.autoLoad()
	return app, nil
}

// buildMainMenu creates the twelve roster operations.
func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: "Add employee", desc: "Create a new roster entry"},
		menuItem{title: "Remove employee", desc: "Delete an entry by id"},
		menuItem{title: "List all", desc: "Show the whole roster"},
		menuItem{title: "Search by id", desc: "Look up a single employee"},
		menuItem{title: "List by role", desc: "Show only one role"},
		menuItem{title: "Update employee", desc: "Edit name, age, salary or role"},
		menuItem{title: "Raise salary", desc: "Single, bulk or per-role raise"},
		menuItem{title: "Payroll stats", desc: "Totals and per-role averages"},
		menuItem{title: "Save CSV", desc: "Write the roster file"},
		menuItem{title: "Load CSV", desc: "Replace the roster from file"},
		menuItem{title: "Sort", desc: "View by name, salary or join date"},
		menuItem{title: "Exit", desc: "Quit crewdesk"},
	}
}

func (a *App) autoLoad() {
	path := a.config.RosterPath()
	if !a.config.AutoLoad() {
		return
	}
	if _, err := os.Stat(path); err != nil {
		a.setStatus("No previous data found. Starting fresh.", false)
		return
	}
	if err := a.loadRoster(); err != nil {
		a.setStatus(fmt.Sprintf("Failed to load %s: %v", filepath.Base(path), err), true)
		return
	}
	a.setStatus(fmt.Sprintf("Auto-loaded %d employees from %s", a.store.Len(), filepath.Base(path)), false)
}

// loadRoster reads the CSV and swaps the roster in one step. A failed
// read or a duplicate id leaves the previous roster untouched.
func (a *App) loadRoster() error {
	entries, err := codec.LoadFile(a.config.RosterPath(), a.clock())
	if err != nil {
		a.logErr("load roster", err)
		return err
	}
	if err := a.store.ReplaceAll(entries); err != nil {
		a.logErr("load roster", err)
		return err
	}
	a.note("Loaded %d employees", a.store.Len())
	if a.diag != nil {
		a.diag.Info().Int("count", a.store.Len()).Str("path", a.config.RosterPath()).Msg("roster loaded")
	}
	return nil
}

func (a *App) saveRoster() error {
	if err := codec.SaveFile(a.config.RosterPath(), a.store.All()); err != nil {
		a.logErr("save roster", err)
		return err
	}
	a.note("Saved %d employees", a.store.Len())
	if a.diag != nil {
		a.diag.Info().Int("count", a.store.Len()).Str("path", a.config.RosterPath()).Msg("roster saved")
	}
	return nil
}

func (a *App) note(format string, args ...any) {
	if a.journal != nil {
		a.journal.Note(format, args...)
	}
}

func (a *App) logErr(op string, err error) {
	if a.diag != nil {
		a.diag.Error().Err(err).Msg(op)
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusErr = isErr
}

// shutdown runs the exit policy: auto-save when configured, then close
// the log files.
func (a *App) shutdown() {
	if a.config.AutoSave() {
		if err := a.saveRoster(); err != nil {
			// Nothing sensible to show; the diagnostic log has it.
			_ = err
		}
	}
	a.note("Session closed")
	_ = a.diag.Close()
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called for every incoming message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-4), max(0, msg.Height-12))
		a.picker.SetSize(max(0, msg.Width-4), max(0, msg.Height-12))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.shutdown()
			return a, tea.Quit
		case "q":
			if a.state == stateMenu {
				a.shutdown()
				return a, tea.Quit
			}
			if a.state == stateTable || a.state == statePayroll {
				return a.returnToMenu()
			}
		case "esc":
			if a.state != stateMenu {
				a.setStatus("Cancelled.", false)
				return a.returnToMenu()
			}
		case "enter":
			switch a.state {
			case stateMenu:
				return a.handleMenuSelection()
			case statePicker:
				if a.onPick != nil {
					pick := a.onPick
					a.onPick = nil
					pick(a.picker.Index())
				}
				return a, nil
			case stateForm:
				a.form.advance()
				return a, nil
			case stateTable, statePayroll:
				return a.returnToMenu()
			}
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case stateMenu:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case statePicker:
		a.picker, cmd = a.picker.Update(msg)
	case stateForm:
		cmd = a.form.Update(msg)
	}
	return a, cmd
}

// handleMenuSelection dispatches the chosen roster operation.
func (a *App) handleMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}

	switch item.title {
	case "Add employee":
		a.beginAdd()
	case "Remove employee":
		a.beginRemove()
	case "List all":
		a.showTable("All employees", a.store.All())
	case "Search by id":
		a.beginSearch()
	case "List by role":
		a.beginListByRole()
	case "Update employee":
		a.beginUpdate()
	case "Raise salary":
		a.beginRaise()
	case "Payroll stats":
		a.state = statePayroll
	case "Save CSV":
		if err := a.saveRoster(); err != nil {
			a.setStatus(fmt.Sprintf("Save failed: %v", err), true)
		} else {
			a.setStatus(fmt.Sprintf("Saved %d employees to %s", a.store.Len(), filepath.Base(a.config.RosterPath())), false)
		}
	case "Load CSV":
		if err := a.loadRoster(); err != nil {
			a.setStatus(fmt.Sprintf("Load failed: %v", err), true)
		} else {
			a.setStatus(fmt.Sprintf("Loaded %d employees.", a.store.Len()), false)
		}
	case "Sort":
		a.beginSort()
	case "Exit":
		a.shutdown()
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) returnToMenu() (tea.Model, tea.Cmd) {
	a.state = stateMenu
	a.form = nil
	a.onPick = nil
	a.tableRows = nil
	return a, nil
}

func (a *App) showTable(title string, rows []*employee.Employee) {
	a.state = stateTable
	a.tableTitle = title
	a.tableRows = rows
}

func (a *App) startPicker(title string, items []list.Item, onPick func(index int)) {
	a.picker.Title = title
	a.picker.SetItems(items)
	a.picker.Select(0)
	if a.width > 0 {
		a.picker.SetSize(max(0, a.width-4), max(0, a.height-12))
	}
	a.onPick = onPick
	a.state = statePicker
}

func rolePickerItems() []list.Item {
	items := make([]list.Item, 0, len(employee.Roles()))
	for _, role := range employee.Roles() {
		items = append(items, menuItem{title: role.String()})
	}
	return items
}

// --- Add -----------------------------------------------------------------

func (a *App) beginAdd() {
	a.form = newForm("Add employee", []formField{
		{label: "ID", placeholder: "7"},
		{label: "Name", placeholder: "Asha Rao"},
		{label: "Age (>18)", placeholder: "25"},
		{label: "Salary", placeholder: "42000"},
		{label: "Role (1 INTERN, 2 FRESHER, 3 SENIOR)", placeholder: "2"},
		{label: "Date of joining (YYYY-MM-DD)", placeholder: "2023-04-01"},
	}, a.submitAdd)
	a.state = stateForm
}

func (a *App) submitAdd(values []string) {
	defer a.returnToMenu()
	id, err := strconv.Atoi(values[0])
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad id: %v", err), true)
		return
	}
	age, err := strconv.Atoi(values[2])
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad age: %v", err), true)
		return
	}
	salary, err := strconv.ParseFloat(values[3], 64)
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad salary: %v", err), true)
		return
	}
	role, err := parseRoleSelector(values[4])
	if err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	joinDate, err := time.Parse(time.DateOnly, values[5])
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad date: %v", err), true)
		return
	}

	e, err := employee.New(id, values[1], age, salary, role, joinDate, a.clock())
	if err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	if err := a.store.Add(e); err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	a.note("Added employee %d (%s)", id, values[1])
	if a.diag != nil {
		a.diag.Info().Int("id", id).Msg("employee added")
	}
	a.setStatus(fmt.Sprintf("Added employee %d.", id), false)
}

func parseRoleSelector(value string) (employee.Role, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("role selector must be 1, 2 or 3")
	}
	return employee.RoleFromSelector(n)
}

// --- Remove / search -----------------------------------------------------

func (a *App) beginRemove() {
	a.form = newForm("Remove employee", []formField{
		{label: "ID to remove", placeholder: "7"},
	}, a.submitRemove)
	a.state = stateForm
}

func (a *App) submitRemove(values []string) {
	defer a.returnToMenu()
	id, err := strconv.Atoi(values[0])
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad id: %v", err), true)
		return
	}
	if !a.store.Remove(id) {
		a.setStatus(fmt.Sprintf("No employee with id %d.", id), true)
		return
	}
	a.note("Removed employee %d", id)
	a.setStatus(fmt.Sprintf("Removed employee %d.", id), false)
}

func (a *App) beginSearch() {
	a.form = newForm("Search by id", []formField{
		{label: "ID to search", placeholder: "7"},
	}, a.submitSearch)
	a.state = stateForm
}

func (a *App) submitSearch(values []string) {
	id, err := strconv.Atoi(values[0])
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad id: %v", err), true)
		a.returnToMenu()
		return
	}
	e, ok := a.store.GetByID(id)
	if !ok {
		a.setStatus(fmt.Sprintf("No employee with id %d.", id), true)
		a.returnToMenu()
		return
	}
	a.showTable(fmt.Sprintf("Employee %d", id), []*employee.Employee{e})
}

func (a *App) beginListByRole() {
	a.startPicker("List which role?", rolePickerItems(), func(index int) {
		role := employee.Roles()[index]
		rows := a.store.Filter(func(e *employee.Employee) bool { return e.Role() == role })
		a.showTable(fmt.Sprintf("%s employees", role), rows)
	})
}

// --- Update --------------------------------------------------------------

func (a *App) beginUpdate() {
	a.form = newForm("Update employee", []formField{
		{label: "ID to update", placeholder: "7"},
	}, a.submitUpdateLookup)
	a.state = stateForm
}

func (a *App) submitUpdateLookup(values []string) {
	id, err := strconv.Atoi(values[0])
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad id: %v", err), true)
		a.returnToMenu()
		return
	}
	e, ok := a.store.GetByID(id)
	if !ok {
		a.setStatus(fmt.Sprintf("No employee with id %d.", id), true)
		a.returnToMenu()
		return
	}
	// Blank fields keep the current value.
	a.form = newForm(fmt.Sprintf("Update %s (blank = keep)", e.Name()), []formField{
		{label: "New name", placeholder: e.Name(), allowBlank: true},
		{label: "New age", placeholder: strconv.Itoa(e.Age()), allowBlank: true},
		{label: "New salary", placeholder: strconv.FormatFloat(e.Salary(), 'f', 2, 64), allowBlank: true},
		{label: "New role (1 INTERN, 2 FRESHER, 3 SENIOR)", placeholder: e.Role().String(), allowBlank: true},
	}, func(fields []string) { a.submitUpdate(e, fields) })
	a.state = stateForm
}

func (a *App) submitUpdate(e *employee.Employee, values []string) {
	defer a.returnToMenu()
	if values[0] != "" {
		e.SetName(values[0])
	}
	if values[1] != "" {
		age, err := strconv.Atoi(values[1])
		if err != nil {
			a.setStatus(fmt.Sprintf("Bad age: %v", err), true)
			return
		}
		if err := e.SetAge(age); err != nil {
			a.setStatus(err.Error(), true)
			return
		}
	}
	if values[2] != "" {
		salary, err := strconv.ParseFloat(values[2], 64)
		if err != nil {
			a.setStatus(fmt.Sprintf("Bad salary: %v", err), true)
			return
		}
		e.SetSalary(salary)
	}
	if values[3] != "" {
		role, err := parseRoleSelector(values[3])
		if err != nil {
			a.setStatus(err.Error(), true)
			return
		}
		e.SetRole(role)
	}
	a.note("Updated employee %d", e.ID())
	a.setStatus(fmt.Sprintf("Updated employee %d.", e.ID()), false)
}

// --- Raises --------------------------------------------------------------

func (a *App) beginRaise() {
	a.startPicker("Raise salary", []list.Item{
		menuItem{title: "One employee", desc: "Raise a single salary by id"},
		menuItem{title: "Everyone", desc: "Bulk raise across the roster"},
		menuItem{title: "One role", desc: "Bulk raise for a single role"},
	}, func(index int) {
		switch index {
		case 0:
			a.form = newForm("Raise one employee", []formField{
				{label: "Employee ID", placeholder: "7"},
				{label: "% raise", placeholder: "10"},
			}, a.submitSingleRaise)
			a.state = stateForm
		case 1:
			a.form = newForm("Raise everyone", []formField{
				{label: "% raise", placeholder: "10"},
			}, func(values []string) { a.submitBulkRaise(values[0], nil) })
			a.state = stateForm
		case 2:
			a.startPicker("Which role?", rolePickerItems(), func(roleIdx int) {
				role := employee.Roles()[roleIdx]
				a.form = newForm(fmt.Sprintf("Raise all %s", role), []formField{
					{label: "% raise", placeholder: "10"},
				}, func(values []string) { a.submitBulkRaise(values[0], &role) })
				a.state = stateForm
			})
		}
	})
}

func (a *App) submitSingleRaise(values []string) {
	defer a.returnToMenu()
	id, err := strconv.Atoi(values[0])
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad id: %v", err), true)
		return
	}
	pct, err := strconv.ParseFloat(values[1], 64)
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad percentage: %v", err), true)
		return
	}
	if !a.store.Raise(id, pct) {
		a.setStatus(fmt.Sprintf("No employee with id %d.", id), true)
		return
	}
	a.note("Raised employee %d by %.1f%%", id, pct)
	a.setStatus(fmt.Sprintf("Raised employee %d by %.1f%%.", id, pct), false)
}

func (a *App) submitBulkRaise(pctValue string, filter *employee.Role) {
	defer a.returnToMenu()
	pct, err := strconv.ParseFloat(pctValue, 64)
	if err != nil {
		a.setStatus(fmt.Sprintf("Bad percentage: %v", err), true)
		return
	}
	a.store.RaiseAll(pct, filter)
	scope := "everyone"
	if filter != nil {
		scope = filter.String()
	}
	a.note("Bulk raise %.1f%% (%s)", pct, scope)
	status := fmt.Sprintf("Applied %.1f%% raise to %s.", pct, scope)
	if pct <= -100 {
		status += " Warning: salaries at or below zero."
	}
	a.setStatus(status, pct <= -100)
}

// --- Sort ----------------------------------------------------------------

var sortChoices = []struct {
	key   string
	title string
	less  func(a, b *employee.Employee) bool
}{
	{key: "name", title: "Name", less: roster.ByName},
	{key: "salary", title: "Salary (highest first)", less: roster.BySalaryDesc},
	{key: "join_date", title: "Join date", less: roster.ByJoinDate},
}

func (a *App) beginSort() {
	items := make([]list.Item, 0, len(sortChoices))
	for _, choice := range sortChoices {
		items = append(items, menuItem{title: choice.title})
	}
	a.startPicker("Sort by", items, func(index int) {
		choice := sortChoices[index]
		a.showTable(fmt.Sprintf("Sorted by %s", strings.ToLower(choice.title)), a.store.SortedView(choice.less))
	})
	for i, choice := range sortChoices {
		if choice.key == a.config.DefaultSort() {
			a.picker.Select(i)
		}
	}
}
