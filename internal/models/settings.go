package models

// Settings represents application-wide settings
type Settings struct {
	Timezone string `json:"timezone"` // IANA timezone name, or "Local" for the system timezone
	Locale   string `json:"locale"`   // BCP 47 tag used for name collation during auto-sort
	// CategoryWeights drives auto-sort ordering: lower weights sort earlier.
	// Categories absent from the map use the built-in defaults.
	CategoryWeights map[ProductType]int `json:"category_weights,omitempty"`
}

// defaultCategoryWeights is the canonical application order of a routine,
// cleanse-first to seal-last.
var defaultCategoryWeights = map[ProductType]int{
	TypeCleanser:  10,
	TypeScrub:     15,
	TypeAcid:      20,
	TypeToner:     30,
	TypeMask:      35,
	TypeEssence:   40,
	TypeSerum:     42,
	TypeRetinol:   45,
	TypeEyeCream:  50,
	TypeLotion:    55,
	TypeCream:     60,
	TypeOil:       70,
	TypeSunscreen: 80,
	TypeOther:     90,
}

// DefaultSettings returns the settings a fresh store is seeded with.
func DefaultSettings() Settings {
	return Settings{
		Timezone: "Local",
		Locale:   "zh-TW",
	}
}

// Weight returns the auto-sort weight for a category, preferring the user's
// configured weights and falling back to the defaults.
func (s Settings) Weight(t ProductType) int {
	if w, ok := s.CategoryWeights[t]; ok {
		return w
	}
	if w, ok := defaultCategoryWeights[t]; ok {
		return w
	}
	return defaultCategoryWeights[TypeOther]
}
