package dosages

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/store"
)

//go:generate mockgen --build_flags=--mod=mod -source=./service.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	History(ctx context.Context, patientId string) ([]*HistoryEntry, error)
	RecordDosageChange(ctx context.Context, patientId string, medication medications.Medication, dosage string, effectiveDate time.Time) (*HistoryEntry, error)
	OpenInitialEntry(ctx context.Context, patient *patients.Patient) (*HistoryEntry, error)
	WeeksOnTreatment(ctx context.Context, patientId string) (int, error)
	WeeksOnCurrentDosage(ctx context.Context, patientId string) (int, error)
}

type service struct {
	dbClient     *mongo.Client
	repo         Repository
	patientsRepo patients.Repository
	logger       *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(dbClient *mongo.Client, repo Repository, patientsRepo patients.Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		dbClient:     dbClient,
		repo:         repo,
		patientsRepo: patientsRepo,
		logger:       logger,
	}, nil
}

func (s *service) History(ctx context.Context, patientId string) ([]*HistoryEntry, error) {
	if _, err := s.patientsRepo.Get(ctx, patientId); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, &Filter{PatientId: &patientId})
}

// RecordDosageChange closes the open history entry and opens a new one as a
// single atomic unit, so no read ever observes zero or two open entries for
// an active patient.
func (s *service) RecordDosageChange(ctx context.Context, patientId string, medication medications.Medication, dosage string, effectiveDate time.Time) (*HistoryEntry, error) {
	patient, err := s.patientsRepo.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}
	if err := medications.ValidateDosage(patient.TreatmentSetting, medication, dosage); err != nil {
		return nil, err
	}

	effectiveDate = dates.Truncate(effectiveDate)
	result, err := store.WithTransaction(ctx, s.dbClient, func(sessCtx mongo.SessionContext) (interface{}, error) {
		open, err := s.repo.GetOpenEntry(sessCtx, patientId)
		if err != nil && !errors.Is(err, ErrNoOpenEntry) {
			return nil, err
		}

		closure, newEntry, err := Rollover(patient, open, medication, dosage, effectiveDate)
		if err != nil {
			return nil, err
		}
		if closure != nil {
			if err := s.repo.CloseEntry(sessCtx, closure.EntryId, closure.EndDate, closure.WeeksOnDosage); err != nil {
				return nil, err
			}
		}

		entry, err := s.repo.Create(sessCtx, newEntry)
		if err != nil {
			return nil, err
		}

		if err := s.patientsRepo.UpdateTreatment(sessCtx, patientId, medication, dosage, effectiveDate); err != nil {
			return nil, err
		}
		return entry, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("recorded dosage change",
		"patientId", patientId,
		"medication", medication,
		"dosage", dosage,
		"effectiveDate", dates.Format(effectiveDate),
	)
	return result.(*HistoryEntry), nil
}

// OpenInitialEntry creates the first history entry for a freshly registered
// patient so the current dosage period is backed by a history row.
func (s *service) OpenInitialEntry(ctx context.Context, patient *patients.Patient) (*HistoryEntry, error) {
	startDate := time.Now()
	if patient.TreatmentStartDate != nil {
		startDate = *patient.TreatmentStartDate
	}

	return s.repo.Create(ctx, HistoryEntry{
		PatientId:        *patient.Id,
		Medication:       patient.Medication,
		Dosage:           patient.Dosage,
		StartDate:        dates.Truncate(startDate),
		TreatmentSetting: patient.TreatmentSetting,
	})
}

func (s *service) WeeksOnTreatment(ctx context.Context, patientId string) (int, error) {
	patient, err := s.patientsRepo.Get(ctx, patientId)
	if err != nil {
		return 0, err
	}
	return WeeksOnTreatment(patient, time.Now()), nil
}

func (s *service) WeeksOnCurrentDosage(ctx context.Context, patientId string) (int, error) {
	patient, err := s.patientsRepo.Get(ctx, patientId)
	if err != nil {
		return 0, err
	}

	open, err := s.repo.GetOpenEntry(ctx, patientId)
	if err != nil {
		if errors.Is(err, ErrNoOpenEntry) {
			s.logger.Warnw("no open dosage history entry, falling back to patient record",
				"patientId", patientId,
			)
			open = nil
		} else {
			return 0, err
		}
	}

	return WeeksOnCurrentDosage(patient, open, time.Now())
}
