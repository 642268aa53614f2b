package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage"
	"github.com/julianstephens/streakline/internal/streak"
	"github.com/julianstephens/streakline/internal/tracker"
)

type MilestoneCmd struct {
	Set    MilestoneSetCmd    `cmd:"" help:"Start or reset a milestone, e.g. a sobriety date."`
	List   MilestoneListCmd   `cmd:"" help:"List milestones with elapsed days."`
	Delete MilestoneDeleteCmd `cmd:"" help:"Delete a milestone."`
}

type MilestoneSetCmd struct {
	Name  string `arg:"" help:"Milestone name."`
	Start string `arg:"" help:"Start date (YYYY-MM-DD)."`
}

func (c *MilestoneSetCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("milestone name cannot be empty")
	}
	start, err := streak.ParseDay(c.Start)
	if err != nil {
		return err
	}

	// Setting an existing name resets it: the old row is soft-deleted.
	existing, err := ctx.Store.GetMilestoneByName(ctx.Ctx(), name)
	switch {
	case err == nil:
		if err := ctx.Store.DeleteMilestone(ctx.Ctx(), existing.ID); err != nil {
			return err
		}
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	m := models.Milestone{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start.String(),
		CreatedAt: ctx.Now(),
	}
	if err := ctx.Store.AddMilestone(ctx.Ctx(), m); err != nil {
		return err
	}

	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	status, err := svc.Milestone(m, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Println(FormatMilestone(status))
	return nil
}

type MilestoneListCmd struct{}

func (c *MilestoneListCmd) Run(ctx *Context) error {
	milestones, err := ctx.Store.GetAllMilestones(ctx.Ctx())
	if err != nil {
		return err
	}
	if len(milestones) == 0 {
		fmt.Println("No milestones found.")
		return nil
	}

	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	for _, m := range milestones {
		status, err := svc.Milestone(m, ctx.Now())
		if err != nil {
			fmt.Printf("%s: %v\n", m.Name, err)
			continue
		}
		fmt.Println(FormatMilestone(status))
	}
	return nil
}

type MilestoneDeleteCmd struct {
	Name string `arg:"" help:"Milestone name."`
}

func (c *MilestoneDeleteCmd) Run(ctx *Context) error {
	m, err := ctx.Store.GetMilestoneByName(ctx.Ctx(), c.Name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("milestone %q not found", c.Name)
		}
		return err
	}
	if err := ctx.Store.DeleteMilestone(ctx.Ctx(), m.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted milestone: %s\n", m.Name)
	return nil
}

func FormatMilestone(s tracker.MilestoneStatus) string {
	if !s.Started {
		return fmt.Sprintf("%s: starts %s", s.Name, s.StartDate)
	}
	return fmt.Sprintf("%s: %d day(s) since %s", s.Name, s.Days, s.StartDate)
}
