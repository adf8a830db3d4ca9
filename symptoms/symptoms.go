// Package symptoms stores patient-reported symptom observations and raises
// alerts when a submission crosses the clinical thresholds.
package symptoms

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUnknownSymptomType = errors.New("unknown symptom type")
	ErrInvalidObservation = errors.New("invalid symptom observation")
)

type SymptomType string

const (
	SymptomDiarrhea  SymptomType = "diarrea"
	SymptomNausea    SymptomType = "nauseas"
	SymptomVomiting  SymptomType = "vomitos"
	SymptomFatigue   SymptomType = "fatiga"
	SymptomFever     SymptomType = "fiebre"
	SymptomMucositis SymptomType = "mucositis"
)

// Observation is one engine-relevant fact per (patient, date, symptom type).
// Which optional fields are meaningful depends on the symptom type; the
// variant table below is the single source of that shape.
type Observation struct {
	Id               *primitive.ObjectID `bson:"_id,omitempty"`
	PatientId        primitive.ObjectID  `bson:"patientId"`
	Date             time.Time           `bson:"date"`
	Type             SymptomType         `bson:"symptomType"`
	Present          bool                `bson:"present"`
	Intensity        *int                `bson:"intensity,omitempty"`
	Count            *int                `bson:"count,omitempty"`
	FeverTemperature *float64            `bson:"feverTemperature,omitempty"`
	FeverChills      *bool               `bson:"feverChills,omitempty"`
	UpdatedTime      time.Time           `bson:"updatedTime,omitempty"`
}

type variant struct {
	intensity bool
	count     bool
	fever     bool
}

var variants = map[SymptomType]variant{
	SymptomDiarrhea:  {intensity: true, count: true},
	SymptomNausea:    {intensity: true},
	SymptomVomiting:  {intensity: true, count: true},
	SymptomFatigue:   {intensity: true},
	SymptomFever:     {fever: true},
	SymptomMucositis: {intensity: true},
}

// KnownType reports whether the symptom type is part of the catalog.
func KnownType(t SymptomType) bool {
	_, ok := variants[t]
	return ok
}

// Validate checks the observation against its type's variant shape.
func (o *Observation) Validate() error {
	shape, ok := variants[o.Type]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSymptomType, o.Type)
	}

	if o.Intensity != nil {
		if !shape.intensity {
			return fmt.Errorf("%w: %s does not take an intensity", ErrInvalidObservation, o.Type)
		}
		if *o.Intensity < 0 || *o.Intensity > 10 {
			return fmt.Errorf("%w: intensity %d out of range 0-10", ErrInvalidObservation, *o.Intensity)
		}
	}
	if o.Count != nil {
		if !shape.count {
			return fmt.Errorf("%w: %s does not take a count", ErrInvalidObservation, o.Type)
		}
		if *o.Count < 0 {
			return fmt.Errorf("%w: negative count", ErrInvalidObservation)
		}
	}
	if (o.FeverTemperature != nil || o.FeverChills != nil) && !shape.fever {
		return fmt.Errorf("%w: %s does not take fever fields", ErrInvalidObservation, o.Type)
	}

	return nil
}

type Filter struct {
	PatientId *string
	Type      *SymptomType
}
