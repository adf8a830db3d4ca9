// Package schedule computes the dosing calendar for cyclical CDK4/6
// inhibitor regimens and stores clinician overrides to it.
package schedule

import (
	"time"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/medications"
)

type DayState string

const (
	StateTake   DayState = "take"
	StatePause  DayState = "pause"
	StateMissed DayState = "missed"
)

type Source string

const (
	SourceCanonical Source = "canonical"
	SourceOverride  Source = "override"
)

// Epoch anchors the 28-day cycles of the 21/7 drugs. Dates before the
// epoch are outside the supported range.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	cycleLengthDays = 28
	takeDays        = 21
	pauseDays       = cycleLengthDays - takeDays
)

// IsCyclic reports whether the medication follows the 21/7 dosing cycle.
// Abemaciclib is dosed continuously and pauses only via explicit override.
func IsCyclic(medication medications.Medication) bool {
	return medication == medications.Ribociclib || medication == medications.Palbociclib
}

// CycleDay returns the zero-based offset of a date within its 28-day cycle.
// The second return value is false for dates before the epoch; the modulo is
// only defined on non-negative day offsets.
func CycleDay(date time.Time) (int, bool) {
	offset := dates.DaysBetween(Epoch, date)
	if offset < 0 {
		return 0, false
	}
	return offset % cycleLengthDays, true
}

// CanonicalState returns the schedule state of a date under the drug's cycle
// rules, ignoring overrides. Unknown medications and out-of-range dates
// return pause, the fail-safe default; callers surface those to the logs.
func CanonicalState(medication medications.Medication, date time.Time) DayState {
	switch medication {
	case medications.Abemaciclib:
		return StateTake
	case medications.Ribociclib, medications.Palbociclib:
		day, ok := CycleDay(date)
		if !ok {
			return StatePause
		}
		if day < takeDays {
			return StateTake
		}
		return StatePause
	default:
		return StatePause
	}
}
