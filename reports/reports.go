// Package reports stores patient-authored missed-medication reports and
// derives the adherence percentage from them.
package reports

import (
	"context"
	"errors"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/patients"
)

var (
	ErrNotFound     = errors.New("missed medication report not found")
	ErrNoMissedDate = errors.New("no report contains the given date")
	ErrEmptyDates   = errors.New("missed dates must not be empty")
)

// Report is one patient-authored batch of missed dates. Retracting a date
// updates the report in place, preserving its identity and notes; the
// report is deleted only when its last date is retracted.
type Report struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	PatientId   primitive.ObjectID  `bson:"patientId"`
	MissedDates []time.Time         `bson:"missedDates"`
	Notes       *string             `bson:"notes,omitempty"`
	CreatedTime time.Time           `bson:"createdTime,omitempty"`
}

type Service interface {
	Report(ctx context.Context, patientId string, missedDates []time.Time, notes *string) (*Report, error)
	Retract(ctx context.Context, patientId string, date time.Time) error
	ListByPatient(ctx context.Context, patientId string) ([]*Report, error)
	AdherencePercentage(ctx context.Context, patientId string) (float64, error)
}

// Adherence computes the fraction of expected treatment days on which the
// medication was taken, expressed 0-100. A patient with no exposure yet
// scores 100; missed days are counted distinctly across reports.
func Adherence(patient *patients.Patient, reports []*Report, now time.Time) float64 {
	if patient.TreatmentStartDate == nil {
		return 100
	}

	totalTreatmentDays := dates.DaysBetween(*patient.TreatmentStartDate, now)
	if totalTreatmentDays <= 0 {
		return 100
	}

	missed := mapset.NewThreadUnsafeSet[string]()
	for _, report := range reports {
		for _, date := range report.MissedDates {
			missed.Add(dates.Format(date))
		}
	}

	percentage := float64(totalTreatmentDays-missed.Cardinality()) / float64(totalTreatmentDays) * 100
	if percentage < 0 {
		return 0
	}
	if percentage > 100 {
		return 100
	}
	return percentage
}
