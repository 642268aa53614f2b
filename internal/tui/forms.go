package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakline/internal/constants"
)

func newGoalForm(fm *GoalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Frequency").
				Description("Only daily goals build streaks").
				Options(
					huh.NewOption("Daily", string(constants.FrequencyDaily)),
					huh.NewOption("Weekly", string(constants.FrequencyWeekly)),
					huh.NewOption("Monthly", string(constants.FrequencyMonthly)),
				).
				Value(&fm.Frequency),
		),
	).WithTheme(huh.ThemeDracula())
}
