package models

import "time"

// DefaultMachineModes returns the five device programs the app knows about.
func DefaultMachineModes() []MachineMode {
	return []MachineMode{
		{ID: "booster", Name: "Booster", Color: "orange", Description: "Orange light - absorption boost and glow care"},
		{ID: "mc", Name: "MC", Color: "green", Description: "Green light - microcurrent, collagen stimulation"},
		{ID: "ems", Name: "EMS", Color: "red", Description: "Red light - muscle-layer lifting, contour care"},
		{ID: "airshot", Name: "Air Shot", Color: "blue", Description: "Blue light - pore care (dry face only)"},
		{ID: "derma", Name: "Derma Shot", Color: "purple", Description: "Purple light - all-round massage"},
	}
}

// MachineModeByID looks up one of the default modes.
func MachineModeByID(id string) (MachineMode, bool) {
	for _, m := range DefaultMachineModes() {
		if m.ID == id {
			return m, true
		}
	}
	return MachineMode{}, false
}

// DefaultWeeklySchedule is the out-of-the-box treatment plan: device days on
// weekdays, acid renewal Saturday and deep moisturizing Sunday as rest days.
func DefaultWeeklySchedule() WeeklySchedule {
	modes := DefaultMachineModes()
	booster, mc, ems, airshot := modes[0], modes[1], modes[2], modes[3]

	poreCare := DayRoutine{
		Theme:        "Pore Care",
		Description:  "Deep pore cleansing. Use Air Shot on a dry face.",
		MachineModes: []MachineMode{airshot, booster},
	}
	lifting := DayRoutine{
		Theme:        "Lifting",
		Description:  "EMS stimulates the muscle layer to lift the contour line.",
		MachineModes: []MachineMode{ems, booster},
	}
	plumping := DayRoutine{
		Theme:        "Plumping",
		Description:  "MC mode boosts collagen for bounce and plumpness.",
		MachineModes: []MachineMode{mc, booster},
	}

	return WeeklySchedule{
		time.Monday:    poreCare,
		time.Tuesday:   lifting,
		time.Wednesday: plumping,
		time.Thursday:  poreCare,
		time.Friday:    lifting,
		time.Saturday: {
			Theme:        "Acid Care",
			Description:  "Weekend renewal. Skin rest day, no device.",
			MachineModes: []MachineMode{},
			IsRestDay:    true,
		},
		time.Sunday: {
			Theme:        "Moisturizing",
			Description:  "Deep hydration and repair to close the week, no device.",
			MachineModes: []MachineMode{},
			IsRestDay:    true,
		},
	}
}

// SeedProducts is the starter catalog written on first init.
func SeedProducts() []Product {
	return []Product{
		{ID: "seed-cleanser", Name: "SK-II Facial Treatment Cleanser", Timing: TimingEvening, Days: AllWeek(), ProductType: TypeCleanser, Order: 0},
		{ID: "seed-pad", Name: "Zero Pore Pad", Timing: TimingEvening, Days: []time.Weekday{time.Saturday}, ProductType: TypeAcid, Order: 1},
		{ID: "seed-ampoule", Name: "Green Tomato Ampoule", Timing: TimingMorning, Days: AllWeek(), ProductType: TypeEssence, Order: 2},
		{ID: "seed-pdrn", Name: "PDRN Ampoule", Timing: TimingEvening, Days: AllWeek(), ProductType: TypeSerum, Order: 3},
		{ID: "seed-cream", Name: "Lierac Cream", Timing: TimingEvening, Days: AllWeek(), ProductType: TypeCream, Order: 5},
		{ID: "seed-sunscreen", Name: "Daily Sunscreen", Timing: TimingMorning, Days: AllWeek(), ProductType: TypeSunscreen, Order: 6},
	}
}

// SkinConditions is the journal's closed tag vocabulary.
var SkinConditions = []string{
	"normal", "dry & flaky", "oily", "oily outside dry inside",
	"red & sensitive", "breakouts", "dull", "enlarged pores",
}
