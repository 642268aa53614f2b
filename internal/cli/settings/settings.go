package settings

import (
	"fmt"

	"github.com/julianstephens/streakline/internal/cli"
	"github.com/julianstephens/streakline/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone  *string `help:"IANA timezone used to decide calendar days (or 'Local')."`
	Reminders *bool   `help:"Enable or disable at-risk reminders."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		fmt.Printf("  Reminders Enabled: %v\n", settings.ReminderEnabled)
		if ctx.Config.Timezone != "" {
			fmt.Printf("\n  (timezone overridden by config: %s)\n", ctx.Config.Timezone)
		}
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Reminders != nil {
		settings.ReminderEnabled = *c.Reminders
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(ctx.Ctx(), settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.ResetTracker()
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
