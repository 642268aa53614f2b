package milestones

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakline/internal/tracker"
)

type Item struct {
	Status tracker.MilestoneStatus
}

func (i Item) Title() string { return i.Status.Name }

func (i Item) Description() string {
	s := i.Status
	if !s.Started {
		return "starts " + s.StartDate.String()
	}
	return fmt.Sprintf("%d days since %s", s.Days, s.StartDate)
}

func (i Item) FilterValue() string { return i.Status.Name }

type Model struct {
	list list.Model
}

func New(statuses []tracker.MilestoneStatus, width, height int) Model {
	l := list.New(toItems(statuses), list.NewDefaultDelegate(), width, height)
	l.Title = "Milestones"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func toItems(statuses []tracker.MilestoneStatus) []list.Item {
	items := make([]list.Item, len(statuses))
	for i, s := range statuses {
		items[i] = Item{Status: s}
	}
	return items
}

func (m *Model) SetStatuses(statuses []tracker.MilestoneStatus) {
	m.list.SetItems(toItems(statuses))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No milestones yet.\n  Use 'streakline milestone set <name> <YYYY-MM-DD>' to start one."
	}
	return m.list.View()
}

// Filtering reports whether the list is capturing keystrokes for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Selected returns the milestone under the cursor.
func (m Model) Selected() (tracker.MilestoneStatus, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Status, ok
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
