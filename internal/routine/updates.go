package routine

import (
	"time"

	"dewy/internal/models"
)

// The functions below are the only way log records change. Each one is a
// total update of its own fields and leaves every other field untouched, so
// a journal save can never clobber a routine snapshot and vice versa.

// WithCompleted sets the completion flag. CompletedAt is stamped when the
// flag flips true and cleared when it flips false.
func WithCompleted(log models.DailyLog, done bool, now time.Time) models.DailyLog {
	log.Completed = done
	if done {
		t := now
		log.CompletedAt = &t
	} else {
		log.CompletedAt = nil
	}
	return log
}

// WithJournal replaces the note and skin condition tags.
func WithJournal(log models.DailyLog, note string, conditions []string) models.DailyLog {
	log.Note = note
	log.SkinConditions = conditions
	return log
}

// WithMachineModes sets the date's device-mode override. An empty non-nil
// slice is a meaningful override ("no device today"), distinct from no
// override at all.
func WithMachineModes(log models.DailyLog, modes []models.MachineMode) models.DailyLog {
	if modes == nil {
		modes = []models.MachineMode{}
	}
	log.MachineModes = modes
	return log
}

// ClearMachineModes removes the mode override so the date falls back to the
// weekly template.
func ClearMachineModes(log models.DailyLog) models.DailyLog {
	log.MachineModes = nil
	return log
}

// WithCustomRoutine sets the date's product snapshot. The legacy field is
// cleared so the record has a single authoritative list.
func WithCustomRoutine(log models.DailyLog, products []models.Product) models.DailyLog {
	if products == nil {
		products = []models.Product{}
	}
	log.CustomRoutine = products
	log.RoutineSnapshot = nil
	return log
}

// ClearCustomRoutine removes the snapshot so the date falls back to the
// global catalog.
func ClearCustomRoutine(log models.DailyLog) models.DailyLog {
	log.CustomRoutine = nil
	log.RoutineSnapshot = nil
	return log
}
