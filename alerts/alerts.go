package alerts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oncycle-org/adherence/store"
)

var ErrNotFound = errors.New("alert not found")

type Type string

const (
	TypeSymptom Type = "symptom"
	TypeMessage Type = "message"
	TypeManual  Type = "manual"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert is a clinical notification raised for one patient. The only state
// transition is created -> resolved; resolving twice is a no-op. Alerts are
// never hard-deleted, except alongside the message that spawned them when
// the sender retracts it.
type Alert struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	PatientId   primitive.ObjectID  `bson:"patientId"`
	Type        Type                `bson:"type"`
	Message     string              `bson:"message"`
	Severity    Severity            `bson:"severity"`
	Resolved    bool                `bson:"resolved"`
	MessageId   *string             `bson:"messageId,omitempty"`
	CreatedTime time.Time           `bson:"createdTime,omitempty"`
}

type Filter struct {
	PatientIds []string
	Resolved   *bool
	Severity   *Severity
}

type Service interface {
	Create(ctx context.Context, alert Alert) (*Alert, error)
	Resolve(ctx context.Context, alertId string) error
	ListActive(ctx context.Context, clinicianId *string, pagination store.Pagination) ([]*Alert, error)
	DeleteByMessage(ctx context.Context, messageId string) error
}
