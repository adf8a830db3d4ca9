package symptoms

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/alerts"
	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/patients"
)

type Service interface {
	// Submit validates and stores a batch of observations for one day and
	// returns the alerts the batch raised.
	Submit(ctx context.Context, patientId string, date time.Time, observations []Observation) ([]*alerts.Alert, error)
	List(ctx context.Context, filter *Filter) ([]*Observation, error)
}

type service struct {
	repo     Repository
	patients patients.Service
	alerts   alerts.Service
	logger   *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, patients patients.Service, alertsService alerts.Service, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:     repo,
		patients: patients,
		alerts:   alertsService,
		logger:   logger,
	}, nil
}

func (s *service) Submit(ctx context.Context, patientId string, date time.Time, observations []Observation) ([]*alerts.Alert, error) {
	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}

	date = dates.Truncate(date)
	for i := range observations {
		observations[i].PatientId = *patient.Id
		observations[i].Date = date
		if err := observations[i].Validate(); err != nil {
			return nil, err
		}
	}

	var raised []*alerts.Alert
	for _, observation := range observations {
		if _, err := s.repo.Upsert(ctx, observation); err != nil {
			return nil, err
		}

		for _, alert := range EvaluateTriggers(observation) {
			created, err := s.alerts.Create(ctx, alert)
			if err != nil {
				return nil, err
			}
			raised = append(raised, created)
		}
	}

	if len(raised) > 0 {
		s.logger.Infow("symptom submission raised alerts",
			"patientId", patientId,
			"date", dates.Format(date),
			"alerts", len(raised),
		)
	}
	return raised, nil
}

func (s *service) List(ctx context.Context, filter *Filter) ([]*Observation, error) {
	return s.repo.List(ctx, filter)
}
