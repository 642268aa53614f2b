package models

import (
	"strconv"

	"github.com/julianstephens/streakline/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingReminderEnabled:
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, err
			}
			settings.ReminderEnabled = enabled
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:        settings.Timezone,
		constants.SettingReminderEnabled: strconv.FormatBool(settings.ReminderEnabled),
	}
}

// DefaultSettings returns the settings written by `init`.
func DefaultSettings() Settings {
	return Settings{
		Timezone:        constants.DefaultTimezone,
		ReminderEnabled: constants.DefaultReminderEnabled,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
