package patients

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/store"
)

var (
	ErrNotFound          = errors.New("patient not found")
	ErrDuplicate         = errors.New("patient is already registered")
	ErrUnknownMedication = errors.New("unknown medication")
	ErrUnknownSetting    = errors.New("unknown treatment setting")
)

//go:generate mockgen --build_flags=--mod=mod -source=./patients.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	Get(ctx context.Context, id string) (*Patient, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error)
	Create(ctx context.Context, patient Patient) (*Patient, error)
	Update(ctx context.Context, id string, update PatientUpdate) (*Patient, error)
	Deactivate(ctx context.Context, id string) error
}

type Patient struct {
	Id                     *primitive.ObjectID          `bson:"_id,omitempty"`
	UserId                 *string                      `bson:"userId,omitempty"`
	FullName               *string                      `bson:"fullName,omitempty"`
	Email                  *string                      `bson:"email,omitempty"`
	Medication             medications.Medication       `bson:"medication"`
	Dosage                 string                       `bson:"dosage"`
	TreatmentSetting       medications.TreatmentSetting `bson:"treatmentSetting"`
	TreatmentStartDate     *time.Time                   `bson:"treatmentStartDate,omitempty"`
	CurrentDosageStartDate *time.Time                   `bson:"currentDosageStartDate,omitempty"`
	ClinicianId            *string                      `bson:"clinicianId,omitempty"`
	Active                 bool                         `bson:"active"`
	CreatedTime            time.Time                    `bson:"createdTime,omitempty"`
	UpdatedTime            time.Time                    `bson:"updatedTime,omitempty"`
}

// PatientUpdate carries the clinician-editable subset of a patient record.
// Dosage changes go through the dosage history tracker instead, so the
// patient fields and the history entries stay transactional.
type PatientUpdate struct {
	FullName    *string `bson:"fullName,omitempty"`
	Email       *string `bson:"email,omitempty"`
	ClinicianId *string `bson:"clinicianId,omitempty"`
}

type Filter struct {
	ClinicianId      *string
	Medication       *medications.Medication
	TreatmentSetting *medications.TreatmentSetting
	Active           *bool
}
