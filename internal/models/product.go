package models

import (
	"fmt"
	"strings"
	"time"
)

// Timing describes which part of the day a product belongs to.
type Timing string

const (
	TimingMorning Timing = "MORNING"
	TimingEvening Timing = "EVENING"
	TimingBoth    Timing = "BOTH"

	// LegacyTimingPostBooster appears in data exported by old versions and is
	// treated as TimingEvening on ingestion.
	LegacyTimingPostBooster Timing = "POST_BOOSTER"
)

// Valid reports whether t is one of the current timing values. The legacy
// alias is not valid; the sanitizer rewrites it before anything else sees it.
func (t Timing) Valid() bool {
	return t == TimingMorning || t == TimingEvening || t == TimingBoth
}

// ParseTiming normalizes a raw timing string, applying the legacy alias.
// Unknown values default to evening, matching the classifier's fallback.
func ParseTiming(s string) Timing {
	switch Timing(strings.ToUpper(strings.TrimSpace(s))) {
	case TimingMorning:
		return TimingMorning
	case TimingEvening, LegacyTimingPostBooster:
		return TimingEvening
	case TimingBoth:
		return TimingBoth
	default:
		return TimingEvening
	}
}

// ProductType is the closed category vocabulary used for sort weighting and
// display. Unrecognized values fall back to TypeOther.
type ProductType string

const (
	TypeCleanser  ProductType = "cleanser"
	TypeScrub     ProductType = "scrub"
	TypeAcid      ProductType = "acid"
	TypeToner     ProductType = "toner"
	TypeMask      ProductType = "mask"
	TypeEssence   ProductType = "essence"
	TypeSerum     ProductType = "serum"
	TypeRetinol   ProductType = "retinol"
	TypeEyeCream  ProductType = "eye_cream"
	TypeLotion    ProductType = "lotion"
	TypeCream     ProductType = "cream"
	TypeOil       ProductType = "oil"
	TypeSunscreen ProductType = "sunscreen"
	TypeOther     ProductType = "other"
)

// AllProductTypes lists the vocabulary in canonical application order.
var AllProductTypes = []ProductType{
	TypeCleanser, TypeScrub, TypeAcid, TypeToner, TypeMask, TypeEssence,
	TypeSerum, TypeRetinol, TypeEyeCream, TypeLotion, TypeCream, TypeOil,
	TypeSunscreen, TypeOther,
}

// ParseProductType normalizes a raw category string to the closed vocabulary.
func ParseProductType(s string) ProductType {
	v := ProductType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range AllProductTypes {
		if v == t {
			return t
		}
	}
	return TypeOther
}

// Product is a single entry in the user's product catalog.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Timing      Timing         `json:"timing"`
	Days        []time.Weekday `json:"days"` // 0 = Sunday .. 6 = Saturday
	ProductType ProductType    `json:"product_type"`
	// Order is the product's position in the global total order of the
	// catalog. Values may have gaps; ties are broken by name.
	Order int `json:"order"`
}

// ScheduledOn reports whether the product is scheduled for the given weekday.
func (p Product) ScheduledOn(d time.Weekday) bool {
	for _, wd := range p.Days {
		if wd == d {
			return true
		}
	}
	return false
}

// Validate checks the fields a product must carry to participate in routine
// resolution.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product id cannot be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	if !p.Timing.Valid() {
		return fmt.Errorf("invalid timing: %s", p.Timing)
	}
	if len(p.Days) == 0 {
		return fmt.Errorf("product must be scheduled on at least one day")
	}
	for _, d := range p.Days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday: %d", d)
		}
	}
	return nil
}

// AllWeek returns all seven weekdays, Sunday first.
func AllWeek() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}
