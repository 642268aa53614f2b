package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/tracker"
	"github.com/julianstephens/streakline/internal/tui/components/goals"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddGoal {
		return m.updateAddGoal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, status line and help.
		listHeight := msg.Height - 5

		h, v := docStyle.GetFrameSize()
		m.goalsModel.SetSize(msg.Width-h, listHeight-v)
		m.milestonesModel.SetSize(msg.Width-h, listHeight-v)
		return m, nil

	case dataLoadedMsg:
		if msg.seq < m.loadSeq {
			// A newer load was started after this one.
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
		}
		m.goalsModel.SetReports(msg.reports)
		m.milestonesModel.SetStatuses(msg.milestones)
		return m, nil

	case goalLoggedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, tracker.ErrFutureEvent) {
				m.errMsg = "cannot log a completion in the future"
			} else {
				m.errMsg = msg.err.Error()
			}
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Logged %s for today", msg.name)
		cmd := m.reload(false)
		return m, cmd

	case goalAddedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Added goal %s", msg.name)
		cmd := m.reload(false)
		return m, cmd

	case goals.AddGoalMsg:
		m.goalForm = &GoalFormModel{Frequency: string(constants.FrequencyDaily)}
		m.form = newGoalForm(m.goalForm)
		m.state = StateAddGoal
		return m, m.form.Init()

	case goals.LogGoalMsg:
		return m, m.logCmd(msg.ID)

	case goals.RefreshMsg:
		m.status = "Refreshed"
		cmd := m.reload(true)
		return m, cmd

	case tea.KeyMsg:
		if m.state == StateGoals && m.goalsModel.Filtering() ||
			m.state == StateMilestones && m.milestonesModel.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + tabCount - 1) % tabCount
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateGoals:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	case StateMilestones:
		m.milestonesModel, cmd = m.milestonesModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateAddGoal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateGoals
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateGoals
		cmds = append(cmds, m.addGoalCmd(strings.TrimSpace(m.goalForm.Name), m.goalForm.Frequency))
	case huh.StateAborted:
		m.state = StateGoals
	}
	return m, tea.Batch(cmds...)
}
