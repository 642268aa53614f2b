package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage"
)

type GoalCmd struct {
	Add     GoalAddCmd     `cmd:"" help:"Add a new goal."`
	List    GoalListCmd    `cmd:"" help:"List goals."`
	Archive GoalArchiveCmd `cmd:"" help:"Archive a goal."`
	Delete  GoalDeleteCmd  `cmd:"" help:"Delete a goal (soft delete)."`
	Restore GoalRestoreCmd `cmd:"" help:"Restore a deleted goal."`
}

type GoalAddCmd struct {
	Name      string `arg:"" optional:"" help:"Goal name. Prompted for when omitted."`
	Frequency string `help:"How often the goal is meant to happen: daily, weekly or monthly." default:"daily" enum:"daily,weekly,monthly"`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		if err := promptGoalName(&name); err != nil {
			return err
		}
	}

	goal, err := ctx.AddGoal(name, c.Frequency)
	if err != nil {
		return err
	}

	fmt.Printf("Added goal: %s (%s)\n", goal.Name, goal.Frequency)
	if goal.Frequency != constants.FrequencyDaily {
		fmt.Printf("Note: %s goals are stored but not tracked as streaks.\n", goal.Frequency)
	}
	return nil
}

func promptGoalName(name *string) error {
	return huh.NewInput().
		Title("Goal name").
		Value(name).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("name is required")
			}
			return nil
		}).
		Run()
}

// AddGoal validates and stores a new goal. Names are unique among live goals.
func (c *Context) AddGoal(name, frequency string) (models.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Goal{}, errors.New("goal name cannot be empty")
	}
	freq, err := models.ParseFrequency(frequency)
	if err != nil {
		return models.Goal{}, err
	}

	if _, err := c.Store.GetGoalByName(c.Ctx(), name); err == nil {
		return models.Goal{}, fmt.Errorf("goal with name %q already exists", name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Goal{}, err
	}

	goal := models.Goal{
		ID:        uuid.New().String(),
		Name:      name,
		Frequency: freq,
		CreatedAt: c.Now(),
	}
	if err := c.Store.AddGoal(c.Ctx(), goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

type GoalListCmd struct {
	Archived bool `help:"Include archived goals."`
	Deleted  bool `help:"Include deleted goals."`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	goals, err := ctx.Store.GetAllGoals(ctx.Ctx(), c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals found.")
		return nil
	}

	for _, goal := range goals {
		status := ""
		if goal.DeletedAt != nil {
			status = " [DELETED]"
		} else if goal.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%-24s %-8s%s\n", goal.Name, goal.Frequency, status)
	}

	return nil
}

type GoalArchiveCmd struct {
	Name      string `arg:"" help:"Goal name to archive."`
	Unarchive bool   `help:"Unarchive the goal instead."`
}

func (c *GoalArchiveCmd) Run(ctx *Context) error {
	goal, err := ctx.FindGoal(c.Name)
	if err != nil {
		return err
	}

	if c.Unarchive {
		if err := ctx.Store.UnarchiveGoal(ctx.Ctx(), goal.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived goal: %s\n", goal.Name)
	} else {
		if err := ctx.Store.ArchiveGoal(ctx.Ctx(), goal.ID); err != nil {
			return err
		}
		fmt.Printf("Archived goal: %s\n", goal.Name)
	}

	return nil
}

type GoalDeleteCmd struct {
	Name string `arg:"" help:"Goal name to delete."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	goal, err := ctx.FindGoal(c.Name)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteGoal(ctx.Ctx(), goal.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted goal: %s\n", goal.Name)
	fmt.Printf("(This is a soft delete. Use '%s goal restore' to undo)\n", constants.AppName)
	return nil
}

type GoalRestoreCmd struct {
	Name string `arg:"" help:"Goal name to restore."`
}

func (c *GoalRestoreCmd) Run(ctx *Context) error {
	goals, err := ctx.Store.GetAllGoals(ctx.Ctx(), true, true)
	if err != nil {
		return err
	}

	var goal *models.Goal
	for i := range goals {
		if strings.EqualFold(goals[i].Name, c.Name) && goals[i].DeletedAt != nil {
			goal = &goals[i]
			break
		}
	}

	if goal == nil {
		return fmt.Errorf("deleted goal %q not found", c.Name)
	}

	if err := ctx.Store.RestoreGoal(ctx.Ctx(), goal.ID); err != nil {
		return err
	}

	fmt.Printf("Restored goal: %s\n", goal.Name)
	return nil
}
