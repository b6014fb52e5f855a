package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dewy/internal/backup"
	"dewy/internal/classifier"
	"dewy/internal/logger"
	"dewy/internal/models"
	"dewy/internal/routine"
	"dewy/internal/storage"
)

type Context struct {
	Store  storage.Provider
	APIKey string
	Debug  bool
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LoadTracker reads the full application state from the store and builds the
// in-memory tracker all mutations run against.
func (c *Context) LoadTracker() (*routine.Tracker, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, err
	}
	products, err := c.Store.GetProducts()
	if err != nil {
		return nil, err
	}
	logs, err := c.Store.GetAllLogs()
	if err != nil {
		return nil, err
	}
	schedule, err := c.Store.GetSchedule()
	if err != nil {
		return nil, err
	}
	return routine.NewTracker(products, logs, schedule, settings), nil
}

// Commit writes everything the tracker marked dirty back to the store.
func (c *Context) Commit(tr *routine.Tracker) error {
	for _, date := range tr.DirtyDates() {
		if err := c.Store.SaveLog(date, tr.Logs[date]); err != nil {
			return fmt.Errorf("failed to save log for %s: %w", date, err)
		}
	}
	if tr.CatalogDirty() {
		if err := c.Store.SaveProducts(tr.Catalog); err != nil {
			return fmt.Errorf("failed to save products: %w", err)
		}
	}
	if tr.ScheduleDirty() {
		if err := c.Store.SaveSchedule(tr.Schedule); err != nil {
			return fmt.Errorf("failed to save schedule: %w", err)
		}
	}
	return nil
}

// NewClassifier returns the Gemini classifier when an API key is configured,
// nil otherwise. A nil classifier means the rule table runs alone.
func (c *Context) NewClassifier(ctx context.Context) classifier.Classifier {
	if c.APIKey == "" {
		return nil
	}
	g, err := classifier.NewGeminiClassifier(ctx, c.APIKey)
	if err != nil {
		logger.Warn("Could not create Gemini client, falling back to rules", "error", err)
		return nil
	}
	return g
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// ParseWeekday parses a single weekday name or number.
func ParseWeekday(s string) (time.Weekday, error) {
	wds, err := ParseWeekdays(s)
	if err != nil {
		return time.Sunday, err
	}
	if len(wds) != 1 {
		return time.Sunday, fmt.Errorf("expected a single weekday, got %q", s)
	}
	return wds[0], nil
}

// FormatDays renders a day schedule compactly: "every day" for a full week,
// abbreviated names otherwise.
func FormatDays(days []time.Weekday) string {
	if len(days) == 7 {
		return "every day"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}

// FormatTiming renders a timing value for display.
func FormatTiming(t models.Timing) string {
	switch t {
	case models.TimingMorning:
		return "morning"
	case models.TimingEvening:
		return "evening"
	case models.TimingBoth:
		return "morning+evening"
	default:
		return strings.ToLower(string(t))
	}
}

// FormatProductLine renders one product the way every listing shows it.
func FormatProductLine(p models.Product, showID bool) string {
	idStr := ""
	if showID {
		idStr = fmt.Sprintf(" (ID: %s)", p.ID)
	}
	return fmt.Sprintf("%2d. %s%s [%s, %s, %s]",
		p.Order, p.Name, idStr, p.ProductType, FormatTiming(p.Timing), FormatDays(p.Days))
}

// PrintRoutineSection prints a scoped product list under a heading.
func PrintRoutineSection(heading string, products []models.Product, showIDs bool) {
	fmt.Printf("%s:\n", heading)
	if len(products) == 0 {
		fmt.Println("  (nothing scheduled)")
		return
	}
	for _, p := range products {
		fmt.Printf("  %s\n", FormatProductLine(p, showIDs))
	}
}

// PrintModes prints a device mode list on one line.
func PrintModes(modes []models.MachineMode) {
	if len(modes) == 0 {
		fmt.Println("  (no device today)")
		return
	}
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.Name
	}
	fmt.Printf("  %s\n", strings.Join(names, " → "))
}
