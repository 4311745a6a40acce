// Package tui provides the interactive Bubble Tea dashboard for billkeep.
package tui

import (
	"fmt"
	"strings"
	"time"

	"billkeep/internal/date"
	"billkeep/internal/model"
	"billkeep/internal/report"
	"billkeep/internal/schedule"
	"billkeep/internal/store"
	"billkeep/internal/tui/components"
	"billkeep/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the store load finishes.
type DataLoadedMsg struct {
	Items      []model.Item
	Categories []model.Category
	Expenses   []model.Expense
	Err        error
	LoadTime   time.Duration
}

// BillToggledMsg reports the outcome of a pay/unpay toggle.
type BillToggledMsg struct {
	Item model.Item
	Err  error
}

// BillSavedMsg reports the outcome of saving a bill from the add form.
type BillSavedMsg struct {
	Item model.Item
	Err  error
}

// App is the root Bubble Tea model.
type App struct {
	dbPath       string
	today        date.Date
	billMonths   int
	incomeMonths int

	// Data
	items      []model.Item
	categories []model.Category
	expenses   []model.Expense // current month
	occs       []model.Occurrence
	loaded     bool
	loadErr    error
	loadTime   time.Duration

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	refreshing bool
	statusMsg  string

	// Bills tab
	billCursor int

	// Calendar tab
	calYear  int
	calMonth time.Month

	// Add-bill form (huh)
	addForm *huh.Form
	addVals addBillValues

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(dbPath string, today date.Date, billMonths, incomeMonths int) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		dbPath:       dbPath,
		today:        today,
		billMonths:   billMonths,
		incomeMonths: incomeMonths,
		calYear:      today.Year,
		calMonth:     today.Month,
		spinner:      sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath, a.today),
		a.spinner.Tick,
	)
}

// bills returns the stored bill items in list order.
func (a App) bills() []model.Item {
	var out []model.Item
	for _, it := range a.items {
		if it.IsBill() {
			out = append(out, it)
		}
	}
	return out
}

func (a *App) recompute() {
	occs, _ := schedule.ExpandAll(a.items, a.today, a.billMonths, a.incomeMonths)
	a.occs = occs

	bills := a.bills()
	if a.billCursor >= len(bills) {
		a.billCursor = len(bills) - 1
	}
	if a.billCursor < 0 {
		a.billCursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.addForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == 1 && a.billCursor > 0 {
				a.billCursor--
			}
			return a, nil
		case tea.MouseButtonWheelDown:
			if a.activeTab == 1 && a.billCursor < len(a.bills())-1 {
				a.billCursor++
			}
			return a, nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// Add-bill form intercepts all keys while active.
		if a.addForm != nil {
			return a.updateAddForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if !a.refreshing {
				a.refreshing = true
				return a, loadDataCmd(a.dbPath, a.today)
			}
			return a, nil
		case "a":
			a.addVals = addBillValues{}
			a.addForm = newAddBillForm(a.categories, &a.addVals)
			if a.width > 0 {
				a.addForm = a.addForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.addForm.Init()
		}

		// Bills tab list navigation and pay toggle.
		if a.activeTab == 1 {
			bills := a.bills()
			switch key {
			case "j", "down":
				if a.billCursor < len(bills)-1 {
					a.billCursor++
				}
				return a, nil
			case "k", "up":
				if a.billCursor > 0 {
					a.billCursor--
				}
				return a, nil
			case "g":
				a.billCursor = 0
				return a, nil
			case "G":
				if len(bills) > 0 {
					a.billCursor = len(bills) - 1
				}
				return a, nil
			case "p", "enter":
				if a.billCursor < len(bills) {
					return a, toggleBillCmd(a.dbPath, bills[a.billCursor].ID, a.today)
				}
				return a, nil
			}
		}

		// Calendar tab month navigation.
		if a.activeTab == 2 {
			switch key {
			case "[", "h":
				a.calMonth--
				if a.calMonth < time.January {
					a.calMonth = time.December
					a.calYear--
				}
				return a, nil
			case "]", "l":
				a.calMonth++
				if a.calMonth > time.December {
					a.calMonth = time.January
					a.calYear++
				}
				return a, nil
			case "t":
				a.calYear = a.today.Year
				a.calMonth = a.today.Month
				return a, nil
			}
		}

		// Tab navigation.
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.refreshing = false
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		if msg.Err == nil {
			a.items = msg.Items
			a.categories = msg.Categories
			a.expenses = msg.Expenses
			a.recompute()
		}
		return a, nil

	case BillToggledMsg:
		if msg.Err != nil {
			a.statusMsg = msg.Err.Error()
			return a, nil
		}
		if msg.Item.IsPaid {
			a.statusMsg = fmt.Sprintf("Marked %q paid", msg.Item.Name)
		} else {
			a.statusMsg = fmt.Sprintf("Marked %q unpaid", msg.Item.Name)
		}
		a.refreshing = true
		return a, loadDataCmd(a.dbPath, a.today)

	case BillSavedMsg:
		if msg.Err != nil {
			a.statusMsg = msg.Err.Error()
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Added bill %q", msg.Item.Name)
		a.refreshing = true
		return a, loadDataCmd(a.dbPath, a.today)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the add form (cursor blinks, etc.)
	if a.addForm != nil {
		return a.updateAddForm(msg)
	}

	return a, nil
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	if a.addForm.State == huh.StateCompleted {
		item, err := a.addVals.toItem(a.categories)
		a.addForm = nil
		if err != nil {
			a.statusMsg = err.Error()
			return a, nil
		}
		return a, saveBillCmd(a.dbPath, item)
	}

	if a.addForm.State == huh.StateAborted {
		a.addForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.addForm != nil {
		return a.addForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  billkeep needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ billkeep"))
	b.WriteString(subtitleStyle.Render(" · Bills & Budgets"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading..."))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"u b c d", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move in bill list"},
		{"[ ]", "Previous / Next month (calendar)"},
		{"t", "Jump to current month"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"a", "Add a bill"},
		{"p / Enter", "Toggle paid on selected bill"},
		{"r", "Reload from disk"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	statusPillStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	statusRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		statusRowStyle.Render(" "+statusPillStyle.Render(a.statusMsg))

	statusBar := components.RenderStatusBar(w, a.today.String(), a.refreshing)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	if a.loadErr != nil {
		content = "\n  " + lipgloss.NewStyle().Foreground(t.Red).Render(a.loadErr.Error())
	} else {
		switch a.activeTab {
		case 0:
			content = a.renderUpcomingTab(cw)
		case 1:
			content = a.renderBillsTab(cw, contentH)
		case 2:
			content = a.renderCalendarTab(cw)
		case 3:
			content = a.renderBudgetTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

// loadDataCmd loads everything the dashboard shows in one background read.
func loadDataCmd(dbPath string, today date.Date) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		st, err := store.Open(dbPath)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		defer st.Close()

		items, err := st.ListItems()
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		cats, err := st.ListCategories()
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		mStart, mEnd := report.MonthRange(today.Year, today.Month)
		expenses, err := st.ListExpenses(mStart, mEnd)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		return DataLoadedMsg{
			Items:      items,
			Categories: cats,
			Expenses:   expenses,
			LoadTime:   time.Since(start),
		}
	}
}

func toggleBillCmd(dbPath, id string, today date.Date) tea.Cmd {
	return func() tea.Msg {
		st, err := store.Open(dbPath)
		if err != nil {
			return BillToggledMsg{Err: err}
		}
		defer st.Close()

		item, err := st.PayBill(id, today)
		return BillToggledMsg{Item: item, Err: err}
	}
}

func saveBillCmd(dbPath string, item model.Item) tea.Cmd {
	return func() tea.Msg {
		st, err := store.Open(dbPath)
		if err != nil {
			return BillSavedMsg{Err: err}
		}
		defer st.Close()

		created, err := st.CreateBill(item)
		return BillSavedMsg{Item: created, Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color so
// gaps between cards and empty lines keep the theme background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space in the tab bar
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-space separator
	}
	return -1
}
