// Package dosages tracks the dosage periods of each patient as an
// append-only history and derives treatment-duration metrics from it.
package dosages

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
)

var (
	ErrNoOpenEntry = errors.New("no open dosage history entry")
	// ErrMultipleOpenEntries indicates prior data corruption. Reads surface
	// it instead of silently picking one of the entries.
	ErrMultipleOpenEntries = errors.New("multiple open dosage history entries")
	// ErrDosageMismatch indicates the patient's live dosage disagrees with
	// the open history entry, e.g. after a partial migration.
	ErrDosageMismatch       = errors.New("patient dosage does not match open history entry")
	ErrInvalidEffectiveDate = errors.New("effective date precedes the current dosage period")
)

// HistoryEntry is a time-bounded record of one dosage period. The single
// entry with a nil EndDate is the patient's current dosage; closed entries
// are immutable.
type HistoryEntry struct {
	Id               *primitive.ObjectID          `bson:"_id,omitempty"`
	PatientId        primitive.ObjectID           `bson:"patientId"`
	Medication       medications.Medication       `bson:"medication"`
	Dosage           string                       `bson:"dosage"`
	StartDate        time.Time                    `bson:"startDate"`
	EndDate          *time.Time                   `bson:"endDate,omitempty"`
	WeeksOnDosage    *int                         `bson:"weeksOnDosage,omitempty"`
	TreatmentSetting medications.TreatmentSetting `bson:"treatmentSetting"`
}

type Filter struct {
	PatientId        *string
	Medication       *medications.Medication
	TreatmentSetting *medications.TreatmentSetting
}

// Closure captures the immutable values a dosage change writes into the
// entry it closes.
type Closure struct {
	EntryId       primitive.ObjectID
	EndDate       time.Time
	WeeksOnDosage int
}

// Rollover computes the close/open pair for a dosage change: the closure of
// the currently open entry (nil when none exists) and the new open entry.
// History entries must stay chronologically non-overlapping, so an effective
// date before the open entry's start is rejected.
func Rollover(patient *patients.Patient, open *HistoryEntry, medication medications.Medication, dosage string, effectiveDate time.Time) (*Closure, HistoryEntry, error) {
	effectiveDate = dates.Truncate(effectiveDate)

	var closure *Closure
	if open != nil {
		if effectiveDate.Before(open.StartDate) {
			return nil, HistoryEntry{}, ErrInvalidEffectiveDate
		}
		closure = &Closure{
			EntryId:       *open.Id,
			EndDate:       dates.AddDays(effectiveDate, -1),
			WeeksOnDosage: dates.WeeksBetween(open.StartDate, effectiveDate),
		}
	}

	entry := HistoryEntry{
		PatientId:        *patient.Id,
		Medication:       medication,
		Dosage:           dosage,
		StartDate:        effectiveDate,
		TreatmentSetting: patient.TreatmentSetting,
	}
	return closure, entry, nil
}

// WeeksOnTreatment returns the number of weeks elapsed since the patient
// started treatment, partial weeks rounded up. Zero when no start date is
// set; a new registration is not an error.
func WeeksOnTreatment(patient *patients.Patient, now time.Time) int {
	if patient.TreatmentStartDate == nil {
		return 0
	}
	return dates.WeeksBetween(*patient.TreatmentStartDate, now)
}

// WeeksOnCurrentDosage derives the weeks the patient has spent on the
// current dosage. At the maximum labeled dosage this equals the full
// treatment duration; below it, the open history entry's start date counts,
// falling back to the patient's currentDosageStartDate when the history row
// is missing.
func WeeksOnCurrentDosage(patient *patients.Patient, openEntry *HistoryEntry, now time.Time) (int, error) {
	if max, ok := medications.MaxDosage(patient.TreatmentSetting, patient.Medication); ok && patient.Dosage == max {
		return WeeksOnTreatment(patient, now), nil
	}

	if openEntry != nil {
		if openEntry.Dosage != patient.Dosage {
			return 0, ErrDosageMismatch
		}
		return dates.WeeksBetween(openEntry.StartDate, now), nil
	}

	// Data-repair path: the history row is missing, the patient record is
	// the only source of the current dosage period.
	if patient.CurrentDosageStartDate == nil {
		return 0, nil
	}
	return dates.WeeksBetween(*patient.CurrentDosageStartDate, now), nil
}
