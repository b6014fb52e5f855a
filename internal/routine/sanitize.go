package routine

import (
	"strings"
	"time"

	"dewy/internal/classifier"
	"dewy/internal/models"
)

// SanitizeProducts applies the load-time migration rules to a persisted
// product list: the legacy POST_BOOSTER timing becomes EVENING, a missing or
// malformed days set defaults to the whole week, a missing product type is
// filled in by the rule classifier, and order values are renumbered by list
// position when they are negative or collide. Malformed data is corrected
// silently, never surfaced as an error.
func SanitizeProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	seen := make(map[int]bool, len(products))
	renumber := false

	for i, p := range products {
		p.Timing = models.ParseTiming(string(p.Timing))

		var days []time.Weekday
		for _, d := range p.Days {
			if d >= time.Sunday && d <= time.Saturday {
				days = append(days, d)
			}
		}
		if len(days) == 0 {
			days = models.AllWeek()
		}
		p.Days = days

		if strings.TrimSpace(string(p.ProductType)) == "" {
			p.ProductType = classifier.SuggestType(p.Name)
		} else {
			p.ProductType = models.ParseProductType(string(p.ProductType))
		}

		if p.Order < 0 || seen[p.Order] {
			renumber = true
		}
		seen[p.Order] = true

		out[i] = p
	}

	if renumber {
		for i := range out {
			out[i].Order = i
		}
	}
	return out
}

// SanitizeLog normalizes a persisted daily log. The legacy RoutineSnapshot
// field folds into CustomRoutine (which wins when both are present), and any
// snapshot products go through the same migration rules as the catalog so old
// records cannot crash day filtering.
func SanitizeLog(log models.DailyLog) models.DailyLog {
	if log.CustomRoutine == nil && log.RoutineSnapshot != nil {
		log.CustomRoutine = log.RoutineSnapshot
	}
	log.RoutineSnapshot = nil
	if log.CustomRoutine != nil {
		log.CustomRoutine = SanitizeProducts(log.CustomRoutine)
	}
	return log
}

// SanitizeLogs normalizes every log in a date-keyed map.
func SanitizeLogs(logs map[string]models.DailyLog) map[string]models.DailyLog {
	out := make(map[string]models.DailyLog, len(logs))
	for date, log := range logs {
		out[date] = SanitizeLog(log)
	}
	return out
}
