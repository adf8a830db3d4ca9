package alerts

import (
	"context"

	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/store"
)

type service struct {
	repo     Repository
	patients patients.Service
	logger   *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, patients patients.Service, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:     repo,
		patients: patients,
		logger:   logger,
	}, nil
}

func (s *service) Create(ctx context.Context, alert Alert) (*Alert, error) {
	created, err := s.repo.Create(ctx, alert)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("alert created",
		"alertId", created.Id.Hex(),
		"patientId", created.PatientId.Hex(),
		"type", created.Type,
		"severity", created.Severity,
	)
	return created, nil
}

func (s *service) Resolve(ctx context.Context, alertId string) error {
	return s.repo.Resolve(ctx, alertId)
}

func (s *service) ListActive(ctx context.Context, clinicianId *string, pagination store.Pagination) ([]*Alert, error) {
	filter := &Filter{Resolved: pointer.FromAny(false)}

	if clinicianId != nil {
		assigned, err := s.patients.List(ctx, &patients.Filter{ClinicianId: clinicianId}, store.Pagination{Limit: 1000})
		if err != nil {
			return nil, err
		}
		filter.PatientIds = make([]string, 0, len(assigned))
		for _, patient := range assigned {
			filter.PatientIds = append(filter.PatientIds, patient.Id.Hex())
		}
	}

	return s.repo.List(ctx, filter, pagination)
}

func (s *service) DeleteByMessage(ctx context.Context, messageId string) error {
	return s.repo.DeleteByMessage(ctx, messageId)
}
