package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/tracker"
	"github.com/julianstephens/streakline/internal/tui/components/goals"
	"github.com/julianstephens/streakline/internal/tui/components/milestones"
)

type SessionState int

const (
	StateGoals SessionState = iota
	StateMilestones
	StateAddGoal
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

type GoalFormModel struct {
	Name      string
	Frequency string
}

type Model struct {
	app             *cli.Context
	svc             *tracker.Service
	state           SessionState
	keys            KeyMap
	help            help.Model
	goalsModel      goals.Model
	milestonesModel milestones.Model
	form            *huh.Form
	goalForm        *GoalFormModel
	loadSeq         int
	status          string
	errMsg          string
	quitting        bool
	width           int
	height          int
}

// NewModel builds the dashboard. Data is loaded by Init, not here.
func NewModel(app *cli.Context, svc *tracker.Service) Model {
	return Model{
		app:             app,
		svc:             svc,
		state:           StateGoals,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		goalsModel:      goals.New(nil, 0, 0),
		milestonesModel: milestones.New(nil, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateGoals {
		keys = append(keys, m.keys.Log, m.keys.Add, m.keys.Refresh)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateGoals {
		actions = []key.Binding{m.keys.Log, m.keys.Add, m.keys.Refresh}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd(m.loadSeq, false)
}
