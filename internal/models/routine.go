package models

import "time"

// MachineMode is a single program on the user's beauty device. The weekly
// schedule and daily logs store full denormalized copies so resolved routines
// are always self-contained; identity is by ID.
type MachineMode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// DayRoutine is one weekly template entry: the theme and default device modes
// for a weekday.
type DayRoutine struct {
	Theme        string        `json:"theme"`
	Description  string        `json:"description"`
	MachineModes []MachineMode `json:"machine_modes"`
	// IsRestDay marks device-free days. By convention MachineModes is empty
	// when set, though resolution does not depend on it.
	IsRestDay bool `json:"is_rest_day"`
}

// WeeklySchedule maps weekdays to their template routine.
type WeeklySchedule map[time.Weekday]DayRoutine

// DailyLog is the per-date record. All fields besides the journal ones act as
// overrides layered on top of the weekly template and the global catalog.
//
// MachineModes and CustomRoutine deliberately have no omitempty: nil means
// "no override" and must survive a marshal round trip distinctly from an
// empty override (e.g. "no device today").
type DailyLog struct {
	Completed      bool     `json:"completed"`
	Note           string   `json:"note,omitempty"`
	SkinConditions []string `json:"skin_conditions,omitempty"`

	// MachineModes, when non-nil, replaces the template's modes for this date.
	MachineModes []MachineMode `json:"machine_modes"`

	// CustomRoutine, when non-nil, is a per-date copy of the product list that
	// is authoritative for this date instead of the global catalog.
	CustomRoutine []Product `json:"custom_routine"`

	// RoutineSnapshot is the legacy name for CustomRoutine, read for
	// compatibility with old exports. CustomRoutine wins when both are set.
	RoutineSnapshot []Product `json:"routine_snapshot,omitempty"`

	// CompletedAt is set when Completed flips true and cleared when it flips
	// back false.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HasModeOverride reports whether the log overrides the template's device
// modes for its date.
func (l DailyLog) HasModeOverride() bool {
	return l.MachineModes != nil
}

// HasCustomRoutine reports whether the log carries a product snapshot, under
// either the current or the legacy field name.
func (l DailyLog) HasCustomRoutine() bool {
	return l.CustomRoutine != nil || l.RoutineSnapshot != nil
}

// Snapshot returns the product snapshot for the date. CustomRoutine takes
// precedence over the legacy RoutineSnapshot when both are present.
func (l DailyLog) Snapshot() []Product {
	if l.CustomRoutine != nil {
		return l.CustomRoutine
	}
	return l.RoutineSnapshot
}

// Suggestion is the output of product classification, whether from the
// Gemini collaborator or the rule-based fallback.
type Suggestion struct {
	ProductType ProductType    `json:"product_type"`
	Timing      Timing         `json:"timing"`
	Days        []time.Weekday `json:"days"`
	Reason      string         `json:"reason,omitempty"`
	Warning     string         `json:"warning,omitempty"`
}
