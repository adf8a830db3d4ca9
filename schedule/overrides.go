package schedule

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrOverrideNotFound = errors.New("calendar override not found")
	ErrUnknownEventType = errors.New("unknown calendar event type")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrDateRangeTooLong = errors.New("date range exceeds one year")
)

type EventType string

const (
	EventTaken  EventType = "taken"
	EventPause  EventType = "pause"
	EventMissed EventType = "missed"
)

func ValidateEventType(eventType EventType) error {
	switch eventType {
	case EventTaken, EventPause, EventMissed:
		return nil
	}
	return ErrUnknownEventType
}

// State maps an override's event type to the day state it imposes.
func (t EventType) State() DayState {
	switch t {
	case EventTaken:
		return StateTake
	case EventMissed:
		return StateMissed
	default:
		return StatePause
	}
}

// CalendarEvent is a clinician-set override that supersedes the canonical
// cycle computation for one date. At most one exists per (patient, date).
type CalendarEvent struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	PatientId   primitive.ObjectID  `bson:"patientId"`
	Date        time.Time           `bson:"date"`
	EventType   EventType           `bson:"eventType"`
	Notes       *string             `bson:"notes,omitempty"`
	UpdatedTime time.Time           `bson:"updatedTime,omitempty"`
}

// DaySchedule is one day of the materialized calendar handed to clients.
type DaySchedule struct {
	Date   time.Time
	State  DayState
	Source Source
}
