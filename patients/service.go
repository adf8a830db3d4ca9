package patients

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/store"
)

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error) {
	return s.repo.List(ctx, filter, pagination)
}

func (s *service) Create(ctx context.Context, patient Patient) (*Patient, error) {
	if err := validateTreatment(patient.Medication, patient.TreatmentSetting, patient.Dosage); err != nil {
		return nil, err
	}

	if patient.CurrentDosageStartDate == nil {
		patient.CurrentDosageStartDate = patient.TreatmentStartDate
	}

	s.logger.Infow("registering patient",
		"medication", patient.Medication,
		"treatmentSetting", patient.TreatmentSetting,
	)
	return s.repo.Create(ctx, patient)
}

func (s *service) Update(ctx context.Context, id string, update PatientUpdate) (*Patient, error) {
	s.logger.Infow("updating patient", "patientId", id)
	return s.repo.Update(ctx, id, update)
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	// Soft deactivation only. History rows referencing the patient are kept.
	s.logger.Infow("deactivating patient", "patientId", id)
	return s.repo.Deactivate(ctx, id)
}

func validateTreatment(medication medications.Medication, setting medications.TreatmentSetting, dosage string) error {
	if !medications.IsKnown(medication) {
		return fmt.Errorf("%w: %q", ErrUnknownMedication, medication)
	}
	if !medications.IsKnownSetting(setting) {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, setting)
	}
	return medications.ValidateDosage(setting, medication, dosage)
}
