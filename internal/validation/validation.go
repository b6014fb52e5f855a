package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dewy/internal/constants"
	"dewy/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateProductID ConflictType = "duplicate_product_id"
	ConflictDuplicateOrder     ConflictType = "duplicate_order"
	ConflictInvalidProduct     ConflictType = "invalid_product"
	ConflictDuplicateName      ConflictType = "duplicate_name"
	ConflictInvalidDateKey     ConflictType = "invalid_date_key"
	ConflictDuplicateInDay     ConflictType = "duplicate_in_day"
	ConflictInvalidWeekday     ConflictType = "invalid_weekday"
)

// Conflict represents a detected inconsistency in the stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Product names/IDs involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		b.WriteString(fmt.Sprintf("- %s\n", c.Description))
	}
	return b.String()
}

func (r *Result) add(c Conflict) {
	r.Conflicts = append(r.Conflicts, c)
}

// ValidateCatalog checks the global product catalog for inconsistencies the
// sanitizer should have removed: duplicate IDs, colliding order values, and
// products that fail their own validation. Duplicate display names are
// reported too since they make product references ambiguous.
func ValidateCatalog(products []models.Product) Result {
	var result Result

	ids := make(map[string]bool, len(products))
	orders := make(map[int]string, len(products))
	names := make(map[string][]string)

	for _, p := range products {
		if ids[p.ID] {
			result.add(Conflict{
				Type:        ConflictDuplicateProductID,
				Description: fmt.Sprintf("duplicate product ID %q", p.ID),
				Items:       []string{p.ID},
			})
		}
		ids[p.ID] = true

		if err := p.Validate(); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidProduct,
				Description: fmt.Sprintf("product %q is invalid: %v", p.Name, err),
				Items:       []string{p.ID},
			})
		}

		if other, taken := orders[p.Order]; taken {
			result.add(Conflict{
				Type:        ConflictDuplicateOrder,
				Description: fmt.Sprintf("products %q and %q share order %d", other, p.Name, p.Order),
				Items:       []string{other, p.Name},
			})
		}
		orders[p.Order] = p.Name

		key := strings.ToLower(strings.TrimSpace(p.Name))
		names[key] = append(names[key], p.ID)
	}

	for name, holders := range names {
		if len(holders) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateName,
				Description: fmt.Sprintf("%d products share the name %q", len(holders), name),
				Items:       holders,
			})
		}
	}

	sortConflicts(result.Conflicts)
	return result
}

// ValidateLogs checks the daily log map for malformed date keys and duplicate
// products inside a day's frozen routine.
func ValidateLogs(logs map[string]models.DailyLog) Result {
	var result Result

	for date, log := range logs {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDateKey,
				Description: fmt.Sprintf("log has invalid date key %q", date),
				Date:        date,
			})
		}

		seen := make(map[string]bool)
		for _, p := range log.Snapshot() {
			if seen[p.ID] {
				result.add(Conflict{
					Type:        ConflictDuplicateInDay,
					Description: fmt.Sprintf("routine for %s contains product %q twice", date, p.Name),
					Date:        date,
					Items:       []string{p.ID},
				})
			}
			seen[p.ID] = true
		}
	}

	sortConflicts(result.Conflicts)
	return result
}

// ValidateSchedule checks the weekly template for out-of-range weekday keys.
func ValidateSchedule(schedule models.WeeklySchedule) Result {
	var result Result

	for day := range schedule {
		if day < time.Sunday || day > time.Saturday {
			result.add(Conflict{
				Type:        ConflictInvalidWeekday,
				Description: fmt.Sprintf("weekly plan has invalid weekday %d", day),
			})
		}
	}

	sortConflicts(result.Conflicts)
	return result
}

// ValidateAll runs every check and merges the results.
func ValidateAll(products []models.Product, logs map[string]models.DailyLog, schedule models.WeeklySchedule) Result {
	var result Result
	result.Conflicts = append(result.Conflicts, ValidateCatalog(products).Conflicts...)
	result.Conflicts = append(result.Conflicts, ValidateLogs(logs).Conflicts...)
	result.Conflicts = append(result.Conflicts, ValidateSchedule(schedule).Conflicts...)
	return result
}

// sortConflicts keeps reports deterministic regardless of map iteration order.
func sortConflicts(conflicts []Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Date != conflicts[j].Date {
			return conflicts[i].Date < conflicts[j].Date
		}
		if conflicts[i].Type != conflicts[j].Type {
			return conflicts[i].Type < conflicts[j].Type
		}
		return conflicts[i].Description < conflicts[j].Description
	})
}
