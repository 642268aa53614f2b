package goals

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/streakline/internal/tracker"
)

type AddGoalMsg struct{}

type LogGoalMsg struct {
	ID string
}

type RefreshMsg struct{}

var (
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Padding(0, 1)

	riskBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1)

	mutedBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("238")).
			Padding(0, 1)
)

type Item struct {
	Report tracker.Report
}

// Badge renders the streak count the way it appears next to the goal name.
func (i Item) Badge() string {
	r := i.Report
	switch {
	case !r.Available():
		return mutedBadgeStyle.Render("–")
	case r.AtRisk():
		return riskBadgeStyle.Render(fmt.Sprintf("🔥 %d", r.CurrentStreak))
	case r.CurrentStreak > 0:
		return badgeStyle.Render(fmt.Sprintf("🔥 %d", r.CurrentStreak))
	default:
		return mutedBadgeStyle.Render("0")
	}
}

func (i Item) Title() string {
	mark := "○"
	if i.Report.ActiveToday {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s %s", mark, i.Report.GoalName, i.Badge())
}

func (i Item) Description() string {
	r := i.Report
	switch r.Status {
	case tracker.StatusUnsupported:
		return fmt.Sprintf("%s goal, not tracked as a streak", r.Frequency)
	case tracker.StatusUnavailable:
		return "streak unavailable"
	}

	desc := fmt.Sprintf("best %d · total %d", r.BestStreak, r.TotalDays)
	switch {
	case r.ActiveToday:
		desc += " · done today"
	case r.AtRisk():
		desc += " · log today to keep it"
	}
	if r.Stale {
		desc += " · stale"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Report.GoalName }

type KeyMap struct {
	Add     key.Binding
	Log     key.Binding
	Refresh key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Log: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log today"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(reports []tracker.Report, width, height int) Model {
	l := list.New(toItems(reports), list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Log, keys.Refresh}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Log, keys.Refresh}
	}

	return Model{list: l, keys: keys}
}

func toItems(reports []tracker.Report) []list.Item {
	items := make([]list.Item, len(reports))
	for i, r := range reports {
		items[i] = Item{Report: r}
	}
	return items
}

func (m *Model) SetReports(reports []tracker.Report) {
	m.list.SetItems(toItems(reports))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddGoalMsg{} }
		case key.Matches(msg, m.keys.Refresh):
			return m, func() tea.Msg { return RefreshMsg{} }
		case key.Matches(msg, m.keys.Log):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Report.ActiveToday {
				return m, func() tea.Msg { return LogGoalMsg{ID: i.Report.GoalID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No goals yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

// Filtering reports whether the list is capturing keystrokes for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the report under the cursor.
func (m Model) Selected() (tracker.Report, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Report, ok
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
