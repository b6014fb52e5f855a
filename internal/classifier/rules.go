package classifier

import (
	"regexp"
	"strings"
	"time"

	"dewy/internal/models"
)

// rule is one entry in the keyword fallback table. Rules are evaluated in
// order and the first match wins; exclude vetoes a match.
type rule struct {
	match   *regexp.Regexp
	exclude *regexp.Regexp
	suggest models.Suggestion
}

var saturdayOnly = []time.Weekday{time.Saturday}

// rules mirrors the keyword heuristics the app has always shipped with,
// including the Chinese product-name keywords. Specialized actives come
// first so e.g. "BHA toner" classifies as acid, not toner.
var rules = []rule{
	{
		match:   regexp.MustCompile(`sun|spf|uv|防曬|隔離|day`),
		exclude: regexp.MustCompile(`night`),
		suggest: models.Suggestion{
			ProductType: models.TypeSunscreen, Timing: models.TimingMorning,
			Days: models.AllWeek(), Reason: "daytime UV protection",
		},
	},
	{
		match: regexp.MustCompile(`acid|bha|aha|salicylic|glycolic|mandelic|酸|煥膚|杏仁酸|水楊酸`),
		suggest: models.Suggestion{
			ProductType: models.TypeAcid, Timing: models.TimingEvening,
			Days: saturdayOnly, Reason: "exfoliating acid",
			Warning: "acids are best used on Saturday renewal evenings",
		},
	},
	{
		match: regexp.MustCompile(`retinol|retinal|a醇|a醛|抗老|wrinkle`),
		suggest: models.Suggestion{
			ProductType: models.TypeRetinol, Timing: models.TimingEvening,
			Days: []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
			Reason: "retinoid anti-aging active",
			Warning: "avoid combining with the Saturday acid day",
		},
	},
	{
		match: regexp.MustCompile(`scrub|exfoli|peel|去角質|磨砂`),
		suggest: models.Suggestion{
			ProductType: models.TypeScrub, Timing: models.TimingEvening,
			Days: saturdayOnly, Reason: "physical exfoliant",
			Warning: "once a week is enough",
		},
	},
	{
		match: regexp.MustCompile(`cleanser|wash|soap|foam|洗面|潔顏`),
		suggest: models.Suggestion{
			ProductType: models.TypeCleanser, Timing: models.TimingEvening,
			Days: models.AllWeek(), Reason: "facial cleansing",
		},
	},
	{
		match:   regexp.MustCompile(`toner|pad|mist|water|水|露|爽膚|棉片`),
		exclude: regexp.MustCompile(`lotion`),
		suggest: models.Suggestion{
			ProductType: models.TypeToner, Timing: models.TimingBoth,
			Days: models.AllWeek(), Reason: "base hydration",
		},
	},
	{
		match: regexp.MustCompile(`mask|pack|sheet|面膜|凍膜`),
		suggest: models.Suggestion{
			ProductType: models.TypeMask, Timing: models.TimingEvening,
			Days: models.AllWeek(), Reason: "intensive treatment",
		},
	},
	{
		match: regexp.MustCompile(`eye|眼`),
		suggest: models.Suggestion{
			ProductType: models.TypeEyeCream, Timing: models.TimingBoth,
			Days: models.AllWeek(), Reason: "eye area care",
		},
	},
	{
		match:   regexp.MustCompile(`oil|油`),
		exclude: regexp.MustCompile(`control`),
		suggest: models.Suggestion{
			ProductType: models.TypeOil, Timing: models.TimingEvening,
			Days: models.AllWeek(), Reason: "occlusive moisture seal",
		},
	},
	{
		match: regexp.MustCompile(`ampoule|concentrate|安瓶|精萃`),
		suggest: models.Suggestion{
			ProductType: models.TypeSerum, Timing: models.TimingEvening,
			Days: models.AllWeek(), Reason: "high-concentration repair",
		},
	},
	{
		match: regexp.MustCompile(`serum|essence|精華`),
		suggest: models.Suggestion{
			ProductType: models.TypeEssence, Timing: models.TimingBoth,
			Days: models.AllWeek(), Reason: "targeted treatment",
		},
	},
	{
		match: regexp.MustCompile(`lotion|emulsion|乳液|凝乳`),
		suggest: models.Suggestion{
			ProductType: models.TypeLotion, Timing: models.TimingBoth,
			Days: models.AllWeek(), Reason: "light moisturizer",
		},
	},
	{
		match:   regexp.MustCompile(`cream|balm|moist|霜`),
		exclude: regexp.MustCompile(`eye|sun`),
		suggest: models.Suggestion{
			ProductType: models.TypeCream, Timing: models.TimingEvening,
			Days: models.AllWeek(), Reason: "rich moisturizer",
		},
	},
}

// Suggest classifies a product name with the deterministic rule table. It
// never fails; unmatched names fall through to "other" used in the evening.
func Suggest(name string) models.Suggestion {
	n := strings.ToLower(name)
	for _, r := range rules {
		if !r.match.MatchString(n) {
			continue
		}
		if r.exclude != nil && r.exclude.MatchString(n) {
			continue
		}
		s := r.suggest
		s.Days = append([]time.Weekday(nil), s.Days...)
		return s
	}
	return models.Suggestion{
		ProductType: models.TypeOther,
		Timing:      models.TimingEvening,
		Days:        models.AllWeek(),
		Reason:      "general skincare",
	}
}

// SuggestType returns just the category for a name, used by the load-time
// sanitizer when a persisted product is missing its type.
func SuggestType(name string) models.ProductType {
	return Suggest(name).ProductType
}
