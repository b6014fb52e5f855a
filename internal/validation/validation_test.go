package validation

import (
	"strings"
	"testing"
	"time"

	"dewy/internal/models"
)

func validProduct(id, name string, order int) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Timing:      models.TimingEvening,
		Days:        models.AllWeek(),
		ProductType: models.TypeCleanser,
		Order:       order,
	}
}

func TestValidateCatalogClean(t *testing.T) {
	result := ValidateCatalog([]models.Product{
		validProduct("a", "Cleanser", 0),
		validProduct("b", "Toner", 1),
	})
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got %v", result.Conflicts)
	}
	if report := result.FormatReport(); report != "No conflicts detected." {
		t.Errorf("unexpected report: %q", report)
	}
}

func TestValidateCatalogDuplicateID(t *testing.T) {
	result := ValidateCatalog([]models.Product{
		validProduct("a", "Cleanser", 0),
		validProduct("a", "Toner", 1),
	})
	if !hasConflict(result, ConflictDuplicateProductID) {
		t.Errorf("expected a duplicate ID conflict, got %v", result.Conflicts)
	}
}

func TestValidateCatalogDuplicateOrder(t *testing.T) {
	result := ValidateCatalog([]models.Product{
		validProduct("a", "Cleanser", 3),
		validProduct("b", "Toner", 3),
	})
	if !hasConflict(result, ConflictDuplicateOrder) {
		t.Errorf("expected a duplicate order conflict, got %v", result.Conflicts)
	}
}

func TestValidateCatalogInvalidProduct(t *testing.T) {
	p := validProduct("a", "Cleanser", 0)
	p.Days = nil
	result := ValidateCatalog([]models.Product{p})
	if !hasConflict(result, ConflictInvalidProduct) {
		t.Errorf("expected an invalid product conflict, got %v", result.Conflicts)
	}
}

func TestValidateCatalogDuplicateName(t *testing.T) {
	result := ValidateCatalog([]models.Product{
		validProduct("a", "Daily Sunscreen", 0),
		validProduct("b", "daily sunscreen ", 1),
	})
	if !hasConflict(result, ConflictDuplicateName) {
		t.Errorf("expected a duplicate name conflict, got %v", result.Conflicts)
	}
}

func TestValidateLogs(t *testing.T) {
	logs := map[string]models.DailyLog{
		"2026-03-01": {CustomRoutine: []models.Product{
			validProduct("a", "Cleanser", 0),
			validProduct("a", "Cleanser", 1),
		}},
		"not-a-date": {},
	}
	result := ValidateLogs(logs)

	if !hasConflict(result, ConflictInvalidDateKey) {
		t.Errorf("expected an invalid date key conflict, got %v", result.Conflicts)
	}
	if !hasConflict(result, ConflictDuplicateInDay) {
		t.Errorf("expected a duplicate in day conflict, got %v", result.Conflicts)
	}
	if !strings.Contains(result.FormatReport(), "2026-03-01") {
		t.Errorf("report should mention the affected date: %q", result.FormatReport())
	}
}

func TestValidateSchedule(t *testing.T) {
	if result := ValidateSchedule(models.DefaultWeeklySchedule()); result.HasConflicts() {
		t.Errorf("default schedule should be clean, got %v", result.Conflicts)
	}

	bad := models.WeeklySchedule{time.Weekday(9): {Theme: "Nope"}}
	if result := ValidateSchedule(bad); !hasConflict(result, ConflictInvalidWeekday) {
		t.Errorf("expected an invalid weekday conflict")
	}
}

func TestValidateAllMerges(t *testing.T) {
	products := []models.Product{
		validProduct("a", "Cleanser", 0),
		validProduct("a", "Toner", 0),
	}
	logs := map[string]models.DailyLog{"bad": {}}
	result := ValidateAll(products, logs, models.DefaultWeeklySchedule())

	if len(result.Conflicts) < 3 {
		t.Errorf("expected conflicts from both catalog and logs, got %v", result.Conflicts)
	}
}

func hasConflict(r Result, ct ConflictType) bool {
	for _, c := range r.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}
