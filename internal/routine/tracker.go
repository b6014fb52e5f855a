package routine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"dewy/internal/models"
	"dewy/internal/utils"
)

// Tracker holds the full in-memory state of the app: the global product
// catalog, the date-keyed log overlay, the weekly template, and settings.
// Every mutation is a synchronous read-modify-write; the caller commits the
// dirty pieces to storage afterward. Single-threaded by design.
type Tracker struct {
	Catalog  []models.Product
	Logs     map[string]models.DailyLog
	Schedule models.WeeklySchedule
	Settings models.Settings

	sorter *Sorter

	dirtyDates    map[string]bool
	catalogDirty  bool
	scheduleDirty bool
}

// NewTracker builds a tracker from freshly loaded state, running the
// migration rules over the catalog and every log snapshot.
func NewTracker(catalog []models.Product, logs map[string]models.DailyLog, schedule models.WeeklySchedule, settings models.Settings) *Tracker {
	if logs == nil {
		logs = map[string]models.DailyLog{}
	}
	if schedule == nil {
		schedule = models.WeeklySchedule{}
	}
	return &Tracker{
		Catalog:    SanitizeProducts(catalog),
		Logs:       SanitizeLogs(logs),
		Schedule:   schedule,
		Settings:   settings,
		sorter:     NewSorter(settings),
		dirtyDates: map[string]bool{},
	}
}

// Sorter exposes the tracker's canonical product sorter.
func (t *Tracker) Sorter() *Sorter { return t.sorter }

// Today returns today's date key in the configured timezone.
func (t *Tracker) Today() (string, error) {
	return utils.GetTodayFromSettings(t.Settings)
}

// Project resolves the displayed state for a date key.
func (t *Tracker) Project(date string) (Projection, error) {
	day, err := utils.WeekdayOf(date, t.Settings)
	if err != nil {
		return Projection{}, err
	}
	past, err := utils.IsPastDate(date, t.Settings)
	if err != nil {
		return Projection{}, err
	}
	log, has := t.Logs[date]
	return ProjectDay(date, day, past, t.Catalog, log, has, t.Schedule), nil
}

func (t *Tracker) setLog(date string, log models.DailyLog) {
	t.Logs[date] = log
	t.dirtyDates[date] = true
}

// editDay applies a list transformation to a date's active product list. The
// result is always written into the date's snapshot; when the date is today
// or later the same transformation also runs against the global catalog so
// the two stay in sync. Past dates never touch the catalog.
func (t *Tracker) editDay(date string, apply func([]models.Product) []models.Product) error {
	proj, err := t.Project(date)
	if err != nil {
		return err
	}

	t.setLog(date, WithCustomRoutine(proj.Log, apply(proj.Products)))

	if !proj.IsPastDate {
		t.Catalog = apply(SortedByOrder(t.Catalog))
		t.catalogDirty = true
	}
	return nil
}

// ReorderForDay moves a product one step within a date's routine.
func (t *Tracker) ReorderForDay(date, id string, dir Direction) error {
	return t.editDay(date, func(list []models.Product) []models.Product {
		out, _ := Reorder(list, id, dir)
		return out
	})
}

// MoveBeforeForDay drags a product in front of another within a date's
// routine and renumbers the list.
func (t *Tracker) MoveBeforeForDay(date, draggedID, targetID string) error {
	return t.editDay(date, func(list []models.Product) []models.Product {
		out, _ := MoveBefore(list, draggedID, targetID)
		return out
	})
}

// AutoSortForDay runs the scoped auto-sort against a date's routine.
func (t *Tracker) AutoSortForDay(date string, scope models.Timing) error {
	return t.editDay(date, func(list []models.Product) []models.Product {
		return AutoSort(list, scope, t.sorter)
	})
}

// AddToDay adds a product to a date's routine at its canonical position.
// When the date is today or later and the catalog does not know the product
// yet, it is added there too; a product already in the catalog leaves the
// catalog untouched.
func (t *Tracker) AddToDay(date string, p models.Product) error {
	proj, err := t.Project(date)
	if err != nil {
		return err
	}

	updated, err := AddToDay(proj.Products, p, t.sorter)
	if err != nil {
		return err
	}
	t.setLog(date, WithCustomRoutine(proj.Log, updated))

	if !proj.IsPastDate {
		if catalogUpdated, err := AddToDay(SortedByOrder(t.Catalog), p, t.sorter); err == nil {
			t.Catalog = catalogUpdated
			t.catalogDirty = true
		}
	}
	return nil
}

// RemoveFromDay drops a product from a date's routine. When the date is
// today or later the product is removed from the global catalog as well;
// past-date removals only touch the snapshot.
func (t *Tracker) RemoveFromDay(date, id string) error {
	proj, err := t.Project(date)
	if err != nil {
		return err
	}

	filtered := make([]models.Product, 0, len(proj.Products))
	found := false
	for _, p := range proj.Products {
		if p.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, p)
	}
	if !found {
		return fmt.Errorf("product %q is not in the routine for %s", id, date)
	}
	t.setLog(date, WithCustomRoutine(proj.Log, filtered))

	if !proj.IsPastDate {
		t.removeFromCatalog(id)
	}
	return nil
}

// ResetRoutine clears a date's snapshot so it falls back to the catalog.
func (t *Tracker) ResetRoutine(date string) {
	t.setLog(date, ClearCustomRoutine(t.Logs[date]))
}

// SetCompleted toggles a date's completion flag. Marking a date complete
// freezes the active list into a snapshot if one does not exist yet, so
// history keeps showing what was actually done.
func (t *Tracker) SetCompleted(date string, done bool) error {
	proj, err := t.Project(date)
	if err != nil {
		return err
	}

	log := proj.Log
	if done && !log.HasCustomRoutine() {
		log = WithCustomRoutine(log, proj.Products)
	}

	now, err := utils.NowInTimezone(t.Settings.Timezone)
	if err != nil {
		return err
	}
	t.setLog(date, WithCompleted(log, done, now))
	return nil
}

// SetJournal saves a date's journal note and skin condition tags.
func (t *Tracker) SetJournal(date, note string, conditions []string) {
	t.setLog(date, WithJournal(t.Logs[date], note, conditions))
}

// SetModes overrides a date's device modes. An empty list means "no device
// today" and still takes precedence over the template.
func (t *Tracker) SetModes(date string, modes []models.MachineMode) {
	t.setLog(date, WithMachineModes(t.Logs[date], modes))
}

// ResetModes drops a date's mode override so the template applies again.
func (t *Tracker) ResetModes(date string) {
	t.setLog(date, ClearMachineModes(t.Logs[date]))
}

// AddProduct adds a product to the global catalog at the end of the order.
// A missing id is generated.
func (t *Tracker) AddProduct(p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}
	for _, existing := range t.Catalog {
		if existing.ID == p.ID {
			return models.Product{}, fmt.Errorf("product %q already exists", p.ID)
		}
	}

	maxOrder := -1
	for _, existing := range t.Catalog {
		if existing.Order > maxOrder {
			maxOrder = existing.Order
		}
	}
	p.Order = maxOrder + 1

	t.Catalog = append(t.Catalog, p)
	t.catalogDirty = true
	return p, nil
}

// UpdateProduct replaces a catalog entry by id.
func (t *Tracker) UpdateProduct(p models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for i, existing := range t.Catalog {
		if existing.ID == p.ID {
			t.Catalog[i] = p
			t.catalogDirty = true
			return nil
		}
	}
	return fmt.Errorf("product %q not found", p.ID)
}

// DeleteProduct removes a product from the global catalog. Past snapshots
// that include it are left alone: history stays frozen.
func (t *Tracker) DeleteProduct(id string) error {
	if !t.removeFromCatalog(id) {
		return fmt.Errorf("product %q not found", id)
	}
	return nil
}

func (t *Tracker) removeFromCatalog(id string) bool {
	filtered := make([]models.Product, 0, len(t.Catalog))
	found := false
	for _, p := range t.Catalog {
		if p.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, p)
	}
	if found {
		t.Catalog = filtered
		t.catalogDirty = true
	}
	return found
}

// ReorderCatalog moves a product one step in the global order.
func (t *Tracker) ReorderCatalog(id string, dir Direction) bool {
	out, moved := Reorder(t.Catalog, id, dir)
	if moved {
		t.Catalog = out
		t.catalogDirty = true
	}
	return moved
}

// MoveBeforeCatalog drags a product in front of another in the global order.
func (t *Tracker) MoveBeforeCatalog(draggedID, targetID string) bool {
	out, moved := MoveBefore(t.Catalog, draggedID, targetID)
	if moved {
		t.Catalog = out
		t.catalogDirty = true
	}
	return moved
}

// AutoSortCatalog runs the scoped auto-sort over the global catalog.
func (t *Tracker) AutoSortCatalog(scope models.Timing) {
	t.Catalog = AutoSort(t.Catalog, scope, t.sorter)
	t.catalogDirty = true
}

// ResolveProduct finds a catalog product by exact id, id prefix, or
// case-insensitive name substring. Ambiguous references are an error.
func (t *Tracker) ResolveProduct(ref string) (models.Product, error) {
	for _, p := range t.Catalog {
		if p.ID == ref {
			return p, nil
		}
	}

	var matches []models.Product
	lower := strings.ToLower(ref)
	for _, p := range t.Catalog {
		if strings.HasPrefix(p.ID, ref) || strings.Contains(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return models.Product{}, fmt.Errorf("no product matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, p := range matches {
			names[i] = p.Name
		}
		return models.Product{}, fmt.Errorf("%q is ambiguous, matches: %s", ref, strings.Join(names, ", "))
	}
}

// SetDayRoutine replaces one weekday's template entry.
func (t *Tracker) SetDayRoutine(day time.Weekday, dr models.DayRoutine) {
	t.Schedule[day] = dr
	t.scheduleDirty = true
}

// ResetSchedule restores the built-in weekly template.
func (t *Tracker) ResetSchedule() {
	t.Schedule = models.DefaultWeeklySchedule()
	t.scheduleDirty = true
}

// DirtyDates lists the dates whose logs changed since the tracker was built,
// sorted ascending.
func (t *Tracker) DirtyDates() []string {
	dates := make([]string, 0, len(t.dirtyDates))
	for d := range t.dirtyDates {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// CatalogDirty reports whether the catalog changed since the tracker was built.
func (t *Tracker) CatalogDirty() bool { return t.catalogDirty }

// ScheduleDirty reports whether the weekly template changed since the tracker was built.
func (t *Tracker) ScheduleDirty() bool { return t.scheduleDirty }
