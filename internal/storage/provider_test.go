package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dewy/internal/models"
)

// providers runs a subtest against both backing stores.
func providers(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "dewy.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "dewy.db")),
	}
}

func initProvider(t *testing.T, p Provider) {
	t.Helper()
	require.NoError(t, p.Init())
	require.NoError(t, p.Load())
	t.Cleanup(func() { p.Close() })
}

func TestInitSeedsDefaults(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			settings, err := p.GetSettings()
			require.NoError(t, err)
			assert.Equal(t, "Local", settings.Timezone)

			products, err := p.GetProducts()
			require.NoError(t, err)
			assert.NotEmpty(t, products, "init should seed the starter catalog")

			schedule, err := p.GetSchedule()
			require.NoError(t, err)
			assert.Len(t, schedule, 7, "init should seed all seven weekdays")
			assert.Equal(t, "Pore Care", schedule[time.Monday].Theme)
			assert.True(t, schedule[time.Sunday].IsRestDay)
		})
	}
}

func TestProductsRoundTrip(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			want := []models.Product{
				{ID: "p1", Name: "Cleanser", Timing: models.TimingEvening, Days: models.AllWeek(), ProductType: models.TypeCleanser, Order: 0},
				{ID: "p2", Name: "Acid Pad", Timing: models.TimingEvening, Days: []time.Weekday{time.Saturday}, ProductType: models.TypeAcid, Order: 5},
			}
			require.NoError(t, p.SaveProducts(want))

			got, err := p.GetProducts()
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "p1", got[0].ID)
			assert.Equal(t, 5, got[1].Order, "order gaps must survive persistence")
			assert.Equal(t, []time.Weekday{time.Saturday}, got[1].Days)
		})
	}
}

func TestLegacyDataSanitizedOnRead(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			require.NoError(t, p.SaveProducts([]models.Product{
				{ID: "old", Name: "Old Ampoule", Timing: models.LegacyTimingPostBooster, Days: models.AllWeek(), ProductType: models.TypeSerum, Order: 0},
			}))

			got, err := p.GetProducts()
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, models.TimingEvening, got[0].Timing, "legacy timing must be migrated on read")
		})
	}
}

func TestLogRoundTrip(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			completedAt := time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)
			log := models.DailyLog{
				Completed:      true,
				Note:           "skin felt calm",
				SkinConditions: []string{"normal"},
				MachineModes:   []models.MachineMode{},
				CustomRoutine: []models.Product{
					{ID: "p1", Name: "Toner", Timing: models.TimingBoth, Days: models.AllWeek(), ProductType: models.TypeToner, Order: 0},
				},
				CompletedAt: &completedAt,
			}
			require.NoError(t, p.SaveLog("2026-03-14", log))

			got, ok, err := p.GetLog("2026-03-14")
			require.NoError(t, err)
			require.True(t, ok)
			assert.True(t, got.Completed)
			assert.Equal(t, "skin felt calm", got.Note)
			require.NotNil(t, got.CompletedAt)
			assert.True(t, got.CompletedAt.Equal(completedAt))

			// The empty mode override must come back non-nil: it means
			// "no device today", not "no override".
			require.NotNil(t, got.MachineModes)
			assert.Empty(t, got.MachineModes)
			require.True(t, got.HasCustomRoutine())
			assert.Equal(t, "p1", got.CustomRoutine[0].ID)
		})
	}
}

func TestAbsentLogIsNotAnError(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			got, ok, err := p.GetLog("1999-01-01")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, got.MachineModes, "absent log must have no override")
			assert.False(t, got.HasCustomRoutine())
		})
	}
}

func TestNilOverridesSurviveRoundTrip(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			require.NoError(t, p.SaveLog("2026-03-15", models.DailyLog{Note: "journal only"}))

			got, ok, err := p.GetLog("2026-03-15")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Nil(t, got.MachineModes, "nil mode override must stay nil")
			assert.False(t, got.HasCustomRoutine())
		})
	}
}

func TestDeleteLog(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			require.NoError(t, p.SaveLog("2026-03-16", models.DailyLog{Completed: true}))
			require.NoError(t, p.DeleteLog("2026-03-16"))

			_, ok, err := p.GetLog("2026-03-16")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestGetAllLogs(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			require.NoError(t, p.SaveLog("2026-03-01", models.DailyLog{Completed: true}))
			require.NoError(t, p.SaveLog("2026-03-02", models.DailyLog{Note: "note"}))

			logs, err := p.GetAllLogs()
			require.NoError(t, err)
			assert.Len(t, logs, 2)
			assert.True(t, logs["2026-03-01"].Completed)
		})
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			initProvider(t, p)

			custom := models.DefaultWeeklySchedule()
			custom[time.Wednesday] = models.DayRoutine{
				Theme:        "Barrier Repair",
				Description:  "Gentle week",
				MachineModes: []models.MachineMode{},
				IsRestDay:    true,
			}
			require.NoError(t, p.SaveSchedule(custom))

			got, err := p.GetSchedule()
			require.NoError(t, err)
			assert.Equal(t, "Barrier Repair", got[time.Wednesday].Theme)
			assert.True(t, got[time.Wednesday].IsRestDay)
		})
	}
}

func TestInitTwiceJSON(t *testing.T) {
	dir := t.TempDir()
	p := NewJSONStore(filepath.Join(dir, "dewy.json"))
	require.NoError(t, p.Init())
	assert.Error(t, p.Init(), "second init must not clobber existing data")
}

func TestLoadWithoutInit(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, NewJSONStore(filepath.Join(dir, "missing.json")).Load())
	assert.Error(t, NewSQLiteStore(filepath.Join(dir, "missing.db")).Load())
}
