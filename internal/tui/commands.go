package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakline/internal/logger"
	"github.com/julianstephens/streakline/internal/tracker"
)

type dataLoadedMsg struct {
	seq        int
	reports    []tracker.Report
	milestones []tracker.MilestoneStatus
	err        error
}

type goalLoggedMsg struct {
	name string
	err  error
}

type goalAddedMsg struct {
	name string
	err  error
}

// reload starts a load that supersedes every earlier one.
func (m *Model) reload(force bool) tea.Cmd {
	m.loadSeq++
	return m.loadCmd(m.loadSeq, force)
}

// loadCmd reads goals and milestones and computes their views. When force is
// set, cached streaks are dropped first. The result carries seq so Update can
// ignore loads that finish after a newer one.
func (m Model) loadCmd(seq int, force bool) tea.Cmd {
	app, svc := m.app, m.svc
	return func() tea.Msg {
		ctx := app.Ctx()
		goalList, err := app.Store.GetAllGoals(ctx, false, false)
		if err != nil {
			return dataLoadedMsg{seq: seq, err: fmt.Errorf("failed to load goals: %w", err)}
		}
		if force {
			for _, g := range goalList {
				svc.Invalidate(g.ID)
			}
		}

		// Per-goal failures still come back as reports with Error set.
		reports, err := svc.Streaks(ctx, goalList)
		if err != nil {
			logger.Warn("Some streaks are unavailable", "error", err)
		}

		all, err := app.Store.GetAllMilestones(ctx)
		if err != nil {
			return dataLoadedMsg{seq: seq, reports: reports, err: fmt.Errorf("failed to load milestones: %w", err)}
		}
		statuses := make([]tracker.MilestoneStatus, 0, len(all))
		for _, ms := range all {
			st, err := svc.Milestone(ms, app.Now())
			if err != nil {
				logger.Warn("Skipping milestone", "name", ms.Name, "error", err)
				continue
			}
			statuses = append(statuses, st)
		}

		return dataLoadedMsg{seq: seq, reports: reports, milestones: statuses}
	}
}

func (m Model) logCmd(goalID string) tea.Cmd {
	app, svc := m.app, m.svc
	return func() tea.Msg {
		ctx := app.Ctx()
		goal, err := app.Store.GetGoal(ctx, goalID)
		if err != nil {
			return goalLoggedMsg{err: fmt.Errorf("failed to get goal: %w", err)}
		}
		if _, err := svc.LogCompletion(ctx, goal.ID, app.Now(), ""); err != nil {
			return goalLoggedMsg{name: goal.Name, err: err}
		}
		return goalLoggedMsg{name: goal.Name}
	}
}

func (m Model) addGoalCmd(name, frequency string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		goal, err := app.AddGoal(name, frequency)
		if err != nil {
			return goalAddedMsg{name: name, err: err}
		}
		return goalAddedMsg{name: goal.Name}
	}
}
