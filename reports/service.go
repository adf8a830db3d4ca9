package reports

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/patients"
)

type service struct {
	repo     Repository
	patients patients.Service
	logger   *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, patientsService patients.Service, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:     repo,
		patients: patientsService,
		logger:   logger,
	}, nil
}

func (s *service) Report(ctx context.Context, patientId string, missedDates []time.Time, notes *string) (*Report, error) {
	if len(missedDates) == 0 {
		return nil, ErrEmptyDates
	}

	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}

	normalized := make([]time.Time, 0, len(missedDates))
	for _, date := range missedDates {
		normalized = append(normalized, dates.Truncate(date))
	}

	s.logger.Infow("missed doses reported", "patientId", patientId, "dates", len(normalized))
	return s.repo.Create(ctx, Report{
		PatientId:   *patient.Id,
		MissedDates: normalized,
		Notes:       notes,
	})
}

// Retract removes a single date from the report that contains it. The
// report keeps its identity and notes unless the last date is removed, in
// which case the whole report is deleted.
func (s *service) Retract(ctx context.Context, patientId string, date time.Time) error {
	date = dates.Truncate(date)
	report, err := s.repo.GetByMissedDate(ctx, patientId, date)
	if err != nil {
		return err
	}

	remaining := make([]time.Time, 0, len(report.MissedDates))
	for _, missed := range report.MissedDates {
		if !dates.Truncate(missed).Equal(date) {
			remaining = append(remaining, missed)
		}
	}

	if len(remaining) == 0 {
		return s.repo.Delete(ctx, *report.Id)
	}
	return s.repo.UpdateDates(ctx, *report.Id, remaining)
}

func (s *service) ListByPatient(ctx context.Context, patientId string) ([]*Report, error) {
	if _, err := s.patients.Get(ctx, patientId); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientId)
}

func (s *service) AdherencePercentage(ctx context.Context, patientId string) (float64, error) {
	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return 0, err
	}

	reports, err := s.repo.ListByPatient(ctx, patientId)
	if err != nil {
		return 0, err
	}

	return Adherence(patient, reports, time.Now()), nil
}
