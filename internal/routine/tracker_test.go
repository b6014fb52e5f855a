package routine

import (
	"errors"
	"testing"
	"time"

	"dewy/internal/models"
)

const (
	pastDate   = "2000-01-02"
	futureDate = "2100-01-02"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	return NewTracker(fixtureCatalog(), nil, models.DefaultWeeklySchedule(), settings)
}

func TestSnapshotIsolationPastEdit(t *testing.T) {
	tr := newTestTracker(t)
	originalOrders := map[string]int{}
	for _, p := range tr.Catalog {
		originalOrders[p.ID] = p.Order
	}

	if err := tr.ReorderForDay(pastDate, "toner", DirectionUp); err != nil {
		t.Fatalf("ReorderForDay() error = %v", err)
	}

	for _, p := range tr.Catalog {
		if p.Order != originalOrders[p.ID] {
			t.Errorf("catalog %s order = %d, past edit must not touch the catalog (want %d)", p.ID, p.Order, originalOrders[p.ID])
		}
	}
	if tr.CatalogDirty() {
		t.Error("past edit marked the catalog dirty")
	}

	log, ok := tr.Logs[pastDate]
	if !ok || !log.HasCustomRoutine() {
		t.Fatal("past edit should have materialized a snapshot")
	}
	if o := orderOf(t, log.CustomRoutine, "toner"); o != 1 {
		t.Errorf("snapshot toner order = %d, want 1", o)
	}
}

func TestTodayEditPropagatesToCatalog(t *testing.T) {
	tr := newTestTracker(t)
	today, err := tr.Today()
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}

	if err := tr.AutoSortForDay(today, models.TimingMorning); err != nil {
		t.Fatalf("AutoSortForDay() error = %v", err)
	}

	// Both the snapshot and the live catalog carry the sorted result.
	if o := orderOf(t, tr.Catalog, "toner"); o != 1 {
		t.Errorf("catalog toner order = %d, want 1", o)
	}
	if o := orderOf(t, tr.Catalog, "cleanser"); o != 0 {
		t.Errorf("catalog cleanser order = %d, want untouched 0", o)
	}
	if !tr.CatalogDirty() {
		t.Error("today's edit should dirty the catalog")
	}

	log := tr.Logs[today]
	if !log.HasCustomRoutine() {
		t.Fatal("today's edit should also write a snapshot")
	}
	if o := orderOf(t, log.CustomRoutine, "toner"); o != 1 {
		t.Errorf("snapshot toner order = %d, want 1", o)
	}
}

func TestFutureEditPropagatesToCatalog(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.ReorderForDay(futureDate, "eyecream", DirectionUp); err != nil {
		t.Fatalf("ReorderForDay() error = %v", err)
	}
	if o := orderOf(t, tr.Catalog, "eyecream"); o != 2 {
		t.Errorf("catalog eyecream order = %d, want 2", o)
	}
}

func TestAddToDayPastDate(t *testing.T) {
	tr := newTestTracker(t)
	mask := models.Product{ID: "mask", Name: "Clay Mask", Timing: models.TimingEvening, Days: models.AllWeek(), ProductType: models.TypeMask}

	if err := tr.AddToDay(pastDate, mask); err != nil {
		t.Fatalf("AddToDay() error = %v", err)
	}

	for _, p := range tr.Catalog {
		if p.ID == "mask" {
			t.Fatal("past add must not reach the catalog")
		}
	}

	log := tr.Logs[pastDate]
	assertIDs(t, idsByOrder(log.CustomRoutine), []string{"cleanser", "toner", "mask", "eyecream", "sunscreen"})
}

func TestAddToDayToday(t *testing.T) {
	tr := newTestTracker(t)
	today, err := tr.Today()
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	mask := models.Product{ID: "mask", Name: "Clay Mask", Timing: models.TimingEvening, Days: models.AllWeek(), ProductType: models.TypeMask}

	if err := tr.AddToDay(today, mask); err != nil {
		t.Fatalf("AddToDay() error = %v", err)
	}

	if _, err := tr.ResolveProduct("mask"); err != nil {
		t.Errorf("today's add should reach the catalog: %v", err)
	}
}

func TestAddToDayDuplicate(t *testing.T) {
	tr := newTestTracker(t)
	dup := tr.Catalog[0]

	err := tr.AddToDay(pastDate, dup)
	if !errors.Is(err, ErrAlreadyScheduled) {
		t.Errorf("err = %v, want ErrAlreadyScheduled", err)
	}
	if _, ok := tr.Logs[pastDate]; ok {
		t.Error("rejected add must leave state unchanged")
	}
}

func TestRemoveFromDay(t *testing.T) {
	t.Run("past removal seals into the snapshot", func(t *testing.T) {
		tr := newTestTracker(t)
		if err := tr.RemoveFromDay(pastDate, "toner"); err != nil {
			t.Fatalf("RemoveFromDay() error = %v", err)
		}

		if _, err := tr.ResolveProduct("toner"); err != nil {
			t.Error("past removal must keep the catalog intact")
		}
		log := tr.Logs[pastDate]
		for _, p := range log.CustomRoutine {
			if p.ID == "toner" {
				t.Error("snapshot still contains the removed product")
			}
		}
	})

	t.Run("today's removal also deletes from the catalog", func(t *testing.T) {
		tr := newTestTracker(t)
		today, err := tr.Today()
		if err != nil {
			t.Fatalf("Today() error = %v", err)
		}
		if err := tr.RemoveFromDay(today, "toner"); err != nil {
			t.Fatalf("RemoveFromDay() error = %v", err)
		}
		if _, err := tr.ResolveProduct("toner"); err == nil {
			t.Error("today's removal should delete from the catalog")
		}
	})

	t.Run("unknown product errors", func(t *testing.T) {
		tr := newTestTracker(t)
		if err := tr.RemoveFromDay(pastDate, "nope"); err == nil {
			t.Error("expected an error for an unknown product")
		}
	})
}

func TestCompletionFreezesSnapshot(t *testing.T) {
	tr := newTestTracker(t)
	today, err := tr.Today()
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}

	if err := tr.SetCompleted(today, true); err != nil {
		t.Fatalf("SetCompleted() error = %v", err)
	}

	log := tr.Logs[today]
	if !log.Completed {
		t.Error("Completed not set")
	}
	if log.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}
	if !log.HasCustomRoutine() {
		t.Error("completing a day should freeze the active list")
	}
	if len(log.CustomRoutine) != len(tr.Catalog) {
		t.Errorf("snapshot has %d products, want %d", len(log.CustomRoutine), len(tr.Catalog))
	}

	// Un-completing clears the timestamp but keeps the frozen routine.
	if err := tr.SetCompleted(today, false); err != nil {
		t.Fatalf("SetCompleted() error = %v", err)
	}
	log = tr.Logs[today]
	if log.CompletedAt != nil {
		t.Error("CompletedAt should clear when completion is undone")
	}
	if !log.HasCustomRoutine() {
		t.Error("undoing completion should not discard the snapshot")
	}
}

func TestCompletionKeepsExistingSnapshot(t *testing.T) {
	tr := newTestTracker(t)
	if err := tr.RemoveFromDay(pastDate, "toner"); err != nil {
		t.Fatalf("RemoveFromDay() error = %v", err)
	}
	if err := tr.SetCompleted(pastDate, true); err != nil {
		t.Fatalf("SetCompleted() error = %v", err)
	}

	log := tr.Logs[pastDate]
	for _, p := range log.CustomRoutine {
		if p.ID == "toner" {
			t.Error("completion overwrote an existing snapshot")
		}
	}
}

func TestModeOverrideLifecycle(t *testing.T) {
	tr := newTestTracker(t)
	date := "2026-08-31" // a Monday, pore care day in the default template

	proj, err := tr.Project(date)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if proj.ModesSource != SourceGlobal || len(proj.MachineModes) != 2 {
		t.Fatalf("template modes = %v (%v), want the two pore care modes", proj.MachineModes, proj.ModesSource)
	}

	// "No device today" is a real override.
	tr.SetModes(date, nil)
	proj, err = tr.Project(date)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if proj.ModesSource != SourceOverride {
		t.Errorf("ModesSource = %v, want override", proj.ModesSource)
	}
	if len(proj.MachineModes) != 0 {
		t.Errorf("modes = %v, want none", proj.MachineModes)
	}

	tr.ResetModes(date)
	proj, err = tr.Project(date)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if proj.ModesSource != SourceGlobal {
		t.Errorf("ModesSource = %v after reset, want global", proj.ModesSource)
	}
}

func TestResetRoutineFallsBackToCatalog(t *testing.T) {
	tr := newTestTracker(t)
	if err := tr.RemoveFromDay(pastDate, "toner"); err != nil {
		t.Fatalf("RemoveFromDay() error = %v", err)
	}

	tr.ResetRoutine(pastDate)
	proj, err := tr.Project(pastDate)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if proj.HasCustomRoutine() {
		t.Error("reset should drop the snapshot")
	}
	if len(proj.Products) != len(tr.Catalog) {
		t.Errorf("projection has %d products after reset, want the catalog's %d", len(proj.Products), len(tr.Catalog))
	}
}

func TestJournalSurvivesRoutineEdits(t *testing.T) {
	tr := newTestTracker(t)
	tr.SetJournal(pastDate, "skin felt calm", []string{"normal"})

	if err := tr.ReorderForDay(pastDate, "toner", DirectionUp); err != nil {
		t.Fatalf("ReorderForDay() error = %v", err)
	}

	log := tr.Logs[pastDate]
	if log.Note != "skin felt calm" {
		t.Errorf("Note = %q, routine edit clobbered the journal", log.Note)
	}
	if len(log.SkinConditions) != 1 {
		t.Errorf("SkinConditions = %v, want one tag", log.SkinConditions)
	}
}

func TestAddProduct(t *testing.T) {
	tr := newTestTracker(t)

	p, err := tr.AddProduct(models.Product{Name: "New Essence", Timing: models.TimingBoth, Days: models.AllWeek(), ProductType: models.TypeEssence})
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if p.ID == "" {
		t.Error("AddProduct should assign an id")
	}
	if p.Order != 4 {
		t.Errorf("Order = %d, want appended at 4", p.Order)
	}

	t.Run("invalid product rejected", func(t *testing.T) {
		if _, err := tr.AddProduct(models.Product{Name: "  ", Timing: models.TimingBoth, Days: models.AllWeek()}); err == nil {
			t.Error("blank name should be rejected")
		}
	})
}

func TestResolveProduct(t *testing.T) {
	tr := newTestTracker(t)

	t.Run("exact id", func(t *testing.T) {
		p, err := tr.ResolveProduct("toner")
		if err != nil || p.ID != "toner" {
			t.Errorf("ResolveProduct(toner) = %v, %v", p.ID, err)
		}
	})

	t.Run("name substring", func(t *testing.T) {
		p, err := tr.ResolveProduct("eye")
		if err != nil || p.ID != "eyecream" {
			t.Errorf("ResolveProduct(eye) = %v, %v", p.ID, err)
		}
	})

	t.Run("ambiguous reference", func(t *testing.T) {
		if _, err := tr.ResolveProduct("e"); err == nil {
			t.Error("ambiguous reference should error")
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, err := tr.ResolveProduct("zzz"); err == nil {
			t.Error("unknown reference should error")
		}
	})
}

func TestDirtyTracking(t *testing.T) {
	tr := newTestTracker(t)

	if len(tr.DirtyDates()) != 0 || tr.CatalogDirty() || tr.ScheduleDirty() {
		t.Fatal("fresh tracker should be clean")
	}

	tr.SetJournal(pastDate, "note", nil)
	if dates := tr.DirtyDates(); len(dates) != 1 || dates[0] != pastDate {
		t.Errorf("DirtyDates() = %v, want [%s]", dates, pastDate)
	}

	tr.SetDayRoutine(time.Monday, models.DayRoutine{Theme: "Custom"})
	if !tr.ScheduleDirty() {
		t.Error("schedule edit should dirty the schedule")
	}

	tr.AutoSortCatalog(models.TimingEvening)
	if !tr.CatalogDirty() {
		t.Error("catalog sort should dirty the catalog")
	}
}

func TestSanitizationOnIngestion(t *testing.T) {
	catalog := []models.Product{
		{ID: "1", Name: "Old Ampoule", Timing: models.LegacyTimingPostBooster, Order: 0},
		{ID: "2", Name: "Foam Wash", Timing: models.TimingEvening, Order: 0},
	}
	logs := map[string]models.DailyLog{
		"2020-05-05": {RoutineSnapshot: []models.Product{{ID: "1", Name: "Old Ampoule", Timing: models.LegacyTimingPostBooster, Order: 0}}},
	}
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"

	tr := NewTracker(catalog, logs, nil, settings)

	if tr.Catalog[0].Timing != models.TimingEvening {
		t.Errorf("catalog timing = %v, want EVENING", tr.Catalog[0].Timing)
	}
	if tr.Catalog[1].ProductType != models.TypeCleanser {
		t.Errorf("catalog type = %v, want cleanser from the name rules", tr.Catalog[1].ProductType)
	}
	if tr.Catalog[1].Order == tr.Catalog[0].Order {
		t.Error("colliding orders not renumbered")
	}

	log := tr.Logs["2020-05-05"]
	if !log.HasCustomRoutine() {
		t.Fatal("legacy snapshot lost on ingestion")
	}
	if log.CustomRoutine[0].Timing != models.TimingEvening {
		t.Errorf("snapshot timing = %v, want EVENING", log.CustomRoutine[0].Timing)
	}
}
