package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/dosages"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/store"
	"github.com/oncycle-org/adherence/symptoms"
)

type service struct {
	patients patients.Repository
	dosages  dosages.Repository
	symptoms symptoms.Repository
	logger   *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(patientsRepo patients.Repository, dosagesRepo dosages.Repository, symptomsRepo symptoms.Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		patients: patientsRepo,
		dosages:  dosagesRepo,
		symptoms: symptomsRepo,
		logger:   logger,
	}, nil
}

func (s *service) DosageBreakdown(ctx context.Context, filter *Filter) ([]DosageGroup, error) {
	historyFilter := &dosages.Filter{}
	if filter != nil {
		historyFilter.Medication = filter.Medication
		historyFilter.TreatmentSetting = filter.TreatmentSetting
	}

	entries, err := s.dosages.List(ctx, historyFilter)
	if err != nil {
		return nil, err
	}

	return DosageBreakdown(entries), nil
}

func (s *service) Reductions(ctx context.Context, medication *medications.Medication) ([]ReductionTiming, error) {
	entries, err := s.dosages.List(ctx, &dosages.Filter{Medication: medication})
	if err != nil {
		return nil, err
	}

	return Reductions(entries), nil
}

func (s *service) SymptomByDosage(ctx context.Context, symptomType symptoms.SymptomType, setting *medications.TreatmentSetting) ([]SymptomGroup, error) {
	if !symptoms.KnownType(symptomType) {
		return nil, fmt.Errorf("%w: %q", symptoms.ErrUnknownSymptomType, symptomType)
	}

	all, err := s.activePatients(ctx)
	if err != nil {
		return nil, err
	}

	observations, err := s.symptoms.List(ctx, &symptoms.Filter{Type: &symptomType})
	if err != nil {
		return nil, err
	}

	return SymptomByDosage(all, observations, symptomType, setting), nil
}

func (s *service) Population(ctx context.Context) (*PopulationSummary, error) {
	all, err := s.activePatients(ctx)
	if err != nil {
		return nil, err
	}

	return Population(all, time.Now()), nil
}

func (s *service) activePatients(ctx context.Context) ([]*patients.Patient, error) {
	// A zero limit is unbounded. The rollups need the whole population.
	return s.patients.List(ctx, &patients.Filter{
		Active: pointer.FromAny(true),
	}, store.Pagination{})
}
