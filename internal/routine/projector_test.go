package routine

import (
	"testing"
	"time"

	"dewy/internal/models"
)

func TestResolveTemplate(t *testing.T) {
	schedule := models.WeeklySchedule{
		time.Monday: {Theme: "Pore Care", MachineModes: []models.MachineMode{{ID: "airshot"}}},
	}

	t.Run("known weekday", func(t *testing.T) {
		got := ResolveTemplate(schedule, time.Monday)
		if got.Theme != "Pore Care" {
			t.Errorf("Theme = %q, want Pore Care", got.Theme)
		}
	})

	t.Run("absent weekday resolves to a rest day", func(t *testing.T) {
		got := ResolveTemplate(schedule, time.Friday)
		if !got.IsRestDay {
			t.Error("absent weekday should be a rest day")
		}
		if len(got.MachineModes) != 0 {
			t.Errorf("MachineModes = %v, want empty", got.MachineModes)
		}
		if got.Theme != "" {
			t.Errorf("Theme = %q, want empty", got.Theme)
		}
	})
}

func TestActiveMachineModes(t *testing.T) {
	schedule := models.WeeklySchedule{
		time.Monday: {Theme: "Pore Care", MachineModes: []models.MachineMode{{ID: "airshot"}, {ID: "booster"}}},
	}

	t.Run("template applies without an override", func(t *testing.T) {
		modes, source := ActiveMachineModes(schedule, models.DailyLog{}, false, time.Monday)
		if source != SourceGlobal {
			t.Errorf("source = %v, want global", source)
		}
		if len(modes) != 2 {
			t.Errorf("modes = %v, want the template's two", modes)
		}
	})

	t.Run("override wins over template", func(t *testing.T) {
		log := models.DailyLog{MachineModes: []models.MachineMode{{ID: "ems"}}}
		modes, source := ActiveMachineModes(schedule, log, true, time.Monday)
		if source != SourceOverride {
			t.Errorf("source = %v, want override", source)
		}
		if len(modes) != 1 || modes[0].ID != "ems" {
			t.Errorf("modes = %v, want [ems]", modes)
		}
	})

	t.Run("empty override means no device and still wins", func(t *testing.T) {
		log := models.DailyLog{MachineModes: []models.MachineMode{}}
		modes, source := ActiveMachineModes(schedule, log, true, time.Monday)
		if source != SourceOverride {
			t.Errorf("source = %v, want override", source)
		}
		if len(modes) != 0 {
			t.Errorf("modes = %v, want none", modes)
		}
	})
}

func TestActiveProducts(t *testing.T) {
	catalog := fixtureCatalog()
	snapshot := []models.Product{
		{ID: "frozen", Name: "Frozen Serum", Timing: models.TimingBoth, Days: models.AllWeek(), ProductType: models.TypeSerum, Order: 0},
	}

	t.Run("catalog without an override", func(t *testing.T) {
		got, source := ActiveProducts(catalog, models.DailyLog{}, false)
		if source != SourceGlobal {
			t.Errorf("source = %v, want global", source)
		}
		if len(got) != len(catalog) {
			t.Errorf("got %d products, want %d", len(got), len(catalog))
		}
	})

	t.Run("snapshot replaces the catalog", func(t *testing.T) {
		got, source := ActiveProducts(catalog, models.DailyLog{CustomRoutine: snapshot}, true)
		if source != SourceOverride {
			t.Errorf("source = %v, want override", source)
		}
		if len(got) != 1 || got[0].ID != "frozen" {
			t.Errorf("got %v, want the snapshot", got)
		}
	})

	t.Run("legacy snapshot field is honored", func(t *testing.T) {
		got, source := ActiveProducts(catalog, models.DailyLog{RoutineSnapshot: snapshot}, true)
		if source != SourceOverride {
			t.Errorf("source = %v, want override", source)
		}
		if len(got) != 1 || got[0].ID != "frozen" {
			t.Errorf("got %v, want the snapshot", got)
		}
	})
}

func TestProjectDay(t *testing.T) {
	catalog := fixtureCatalog()
	schedule := models.DefaultWeeklySchedule()

	proj := ProjectDay("2026-08-31", time.Monday, false, catalog, models.DailyLog{}, false, schedule)

	if proj.Theme != "Pore Care" {
		t.Errorf("Theme = %q, want Pore Care", proj.Theme)
	}
	if proj.HasCustomRoutine() {
		t.Error("no override should project as the live catalog")
	}

	morning := proj.Morning()
	assertIDs(t, idsByOrder(morning), []string{"sunscreen", "toner", "eyecream"})

	evening := proj.Evening()
	assertIDs(t, idsByOrder(evening), []string{"cleanser", "toner", "eyecream"})
}
