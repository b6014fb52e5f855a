package routine

import (
	"time"

	"dewy/internal/models"
)

// SourceKind tags where a projected value came from, so callers can tell an
// overridden day apart from the live defaults without null checks.
type SourceKind string

const (
	SourceGlobal   SourceKind = "global"
	SourceOverride SourceKind = "override"
)

// ResolveTemplate returns the weekly template entry for a weekday. Absent
// weekdays resolve to a safe rest-day default instead of an error.
func ResolveTemplate(schedule models.WeeklySchedule, day time.Weekday) models.DayRoutine {
	if dr, ok := schedule[day]; ok {
		return dr
	}
	return models.DayRoutine{
		MachineModes: []models.MachineMode{},
		IsRestDay:    true,
	}
}

// ActiveProducts resolves the product list that is authoritative for a date:
// the log's snapshot when one exists, otherwise the global catalog. The
// result is a full, unfiltered list; day and timing filtering is a separate
// view step.
func ActiveProducts(catalog []models.Product, log models.DailyLog, hasLog bool) ([]models.Product, SourceKind) {
	if hasLog && log.HasCustomRoutine() {
		return SanitizeProducts(log.Snapshot()), SourceOverride
	}
	return append([]models.Product(nil), catalog...), SourceGlobal
}

// ActiveMachineModes resolves the device modes for a date. Precedence is
// strictly override over template; there is no third tier. An empty non-nil
// override means "no device today" and still wins over the template.
func ActiveMachineModes(schedule models.WeeklySchedule, log models.DailyLog, hasLog bool, day time.Weekday) ([]models.MachineMode, SourceKind) {
	if hasLog && log.HasModeOverride() {
		return append([]models.MachineMode(nil), log.MachineModes...), SourceOverride
	}
	return append([]models.MachineMode(nil), ResolveTemplate(schedule, day).MachineModes...), SourceGlobal
}

// Projection is the resolved view of one calendar date.
type Projection struct {
	Date    string
	Weekday time.Weekday

	Theme       string
	Description string
	IsRestDay   bool

	// Products is the full active list for the date, sorted by order. Use
	// Morning and Evening for the scoped views.
	Products       []models.Product
	ProductsSource SourceKind

	MachineModes []models.MachineMode
	ModesSource  SourceKind

	// IsPastDate governs write propagation: edits to past dates are sealed
	// into the date's snapshot and never reach the global catalog.
	IsPastDate bool

	Log    models.DailyLog
	HasLog bool
}

// HasCustomRoutine reports whether the date shows a frozen snapshot rather
// than the live catalog.
func (p Projection) HasCustomRoutine() bool {
	return p.ProductsSource == SourceOverride
}

// Morning returns the date's morning product list, sorted by order.
func (p Projection) Morning() []models.Product {
	return FilterForScope(p.Products, p.Weekday, models.TimingMorning)
}

// Evening returns the date's evening product list, sorted by order.
func (p Projection) Evening() []models.Product {
	return FilterForScope(p.Products, p.Weekday, models.TimingEvening)
}

// DayList returns every product scheduled on the date regardless of timing,
// sorted by order.
func (p Projection) DayList() []models.Product {
	return FilterForScope(p.Products, p.Weekday, "")
}

// ProjectDay combines catalog, override, and template into the displayed
// state for one date. Pure function of its inputs.
func ProjectDay(date string, day time.Weekday, isPast bool, catalog []models.Product, log models.DailyLog, hasLog bool, schedule models.WeeklySchedule) Projection {
	template := ResolveTemplate(schedule, day)
	products, productsSource := ActiveProducts(catalog, log, hasLog)
	modes, modesSource := ActiveMachineModes(schedule, log, hasLog, day)

	return Projection{
		Date:           date,
		Weekday:        day,
		Theme:          template.Theme,
		Description:    template.Description,
		IsRestDay:      template.IsRestDay,
		Products:       SortedByOrder(products),
		ProductsSource: productsSource,
		MachineModes:   modes,
		ModesSource:    modesSource,
		IsPastDate:     isPast,
		Log:            log,
		HasLog:         hasLog,
	}
}
