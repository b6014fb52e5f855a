package utils

import (
	"fmt"
	"time"

	"dewy/internal/constants"
	"dewy/internal/models"
)

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
// This ensures that "today" is determined by the user's configured timezone, not the system timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// GetTodayFromSettings returns today's date string (YYYY-MM-DD) using the timezone from settings.
func GetTodayFromSettings(settings models.Settings) (string, error) {
	return GetTodayInTimezone(settings.Timezone)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// DateKey formats a time as the standard date key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) at midnight in the
// specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ResolveDateArg turns a CLI date argument into a date key. An empty argument
// and the literal "today" resolve to today in the configured timezone;
// "yesterday" and "tomorrow" are offsets from it. Anything else must be a
// YYYY-MM-DD string.
func ResolveDateArg(arg string, settings models.Settings) (string, error) {
	now, err := NowInTimezone(settings.Timezone)
	if err != nil {
		return "", err
	}
	switch arg {
	case "", "today":
		return DateKey(now), nil
	case "yesterday":
		return DateKey(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return DateKey(now.AddDate(0, 0, 1)), nil
	}
	if _, err := ParseDate(arg); err != nil {
		return "", err
	}
	return arg, nil
}

// IsPastDate reports whether the date key falls strictly before today in the
// configured timezone. Date keys compare correctly as strings.
func IsPastDate(dateKey string, settings models.Settings) (bool, error) {
	today, err := GetTodayFromSettings(settings)
	if err != nil {
		return false, err
	}
	return dateKey < today, nil
}

// WeekdayOf returns the weekday of a date key in the configured timezone.
func WeekdayOf(dateKey string, settings models.Settings) (time.Weekday, error) {
	loc, err := LoadLocation(settings.Timezone)
	if err != nil {
		return time.Sunday, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	t, err := ParseDateInLocation(dateKey, loc)
	if err != nil {
		return time.Sunday, err
	}
	return t.Weekday(), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
