package schedule

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/config"
	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
)

const maxRangeDays = 366

type Service interface {
	GetScheduleState(ctx context.Context, patientId string, from time.Time, to time.Time) ([]DaySchedule, error)
	SetOverride(ctx context.Context, patientId string, date time.Time, eventType EventType, notes *string) (*CalendarEvent, error)
	DeleteOverride(ctx context.Context, patientId string, date time.Time) error
	BulkSetTherapyPauseWeek(ctx context.Context, patientId string, startDate time.Time) (int, error)
}

type service struct {
	cfg      *config.Config
	repo     Repository
	patients patients.Service
	logger   *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(cfg *config.Config, repo Repository, patients patients.Service, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		cfg:      cfg,
		repo:     repo,
		patients: patients,
		logger:   logger,
	}, nil
}

func (s *service) GetScheduleState(ctx context.Context, patientId string, from time.Time, to time.Time) ([]DaySchedule, error) {
	from, to = dates.Truncate(from), dates.Truncate(to)
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}
	if dates.DaysBetween(from, to) > maxRangeDays {
		return nil, ErrDateRangeTooLong
	}

	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}
	if !medications.IsKnown(patient.Medication) {
		// Schedule display must never error out over a data-entry gap.
		// The canonical rule falls back to pause for unknown medications.
		s.logger.Warnw("computing schedule for unknown medication",
			"patientId", patientId,
			"medication", patient.Medication,
		)
	}

	overrides, err := s.repo.ListRange(ctx, patientId, from, to)
	if err != nil {
		return nil, err
	}

	return BuildSchedule(patient.Medication, from, to, overrides), nil
}

// BuildSchedule materializes the day-by-day calendar over [from, to]. An
// override for a date replaces the computed state entirely; its absence
// falls back to the canonical cycle rule.
func BuildSchedule(medication medications.Medication, from time.Time, to time.Time, overrides []*CalendarEvent) []DaySchedule {
	byDate := make(map[string]*CalendarEvent, len(overrides))
	for _, override := range overrides {
		byDate[dates.Format(override.Date)] = override
	}

	days := make([]DaySchedule, 0, dates.DaysBetween(from, to)+1)
	for date := from; !date.After(to); date = dates.AddDays(date, 1) {
		day := DaySchedule{Date: date}
		if override, ok := byDate[dates.Format(date)]; ok {
			day.State = override.EventType.State()
			day.Source = SourceOverride
		} else {
			day.State = CanonicalState(medication, date)
			day.Source = SourceCanonical
		}
		days = append(days, day)
	}
	return days
}

func (s *service) SetOverride(ctx context.Context, patientId string, date time.Time, eventType EventType, notes *string) (*CalendarEvent, error) {
	if err := ValidateEventType(eventType); err != nil {
		return nil, err
	}

	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}

	return s.repo.Upsert(ctx, CalendarEvent{
		PatientId: *patient.Id,
		Date:      dates.Truncate(date),
		EventType: eventType,
		Notes:     notes,
	})
}

func (s *service) DeleteOverride(ctx context.Context, patientId string, date time.Time) error {
	return s.repo.Delete(ctx, patientId, dates.Truncate(date))
}

func (s *service) BulkSetTherapyPauseWeek(ctx context.Context, patientId string, startDate time.Time) (int, error) {
	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return 0, err
	}

	events := TherapyPauseEvents(*patient.Id, patient.Medication, dates.Truncate(startDate), s.cfg.TherapyPauseRegeneratedCycles)
	if err := s.repo.UpsertMany(ctx, events); err != nil {
		return 0, fmt.Errorf("error inserting therapy pause week: %w", err)
	}

	s.logger.Infow("inserted therapy pause week",
		"patientId", patientId,
		"startDate", dates.Format(startDate),
		"overrides", len(events),
	)
	return len(events), nil
}

// TherapyPauseEvents materializes one week of pause overrides and, for 21/7
// drugs, the following regenerated cycles (3 weeks taken + 1 week pause)
// anchored to the day after the pause week.
func TherapyPauseEvents(patientId primitive.ObjectID, medication medications.Medication, startDate time.Time, regeneratedCycles int) []CalendarEvent {
	var events []CalendarEvent
	appendWeek := func(anchor time.Time, days int, eventType EventType) time.Time {
		for i := 0; i < days; i++ {
			events = append(events, CalendarEvent{
				PatientId: patientId,
				Date:      dates.AddDays(anchor, i),
				EventType: eventType,
			})
		}
		return dates.AddDays(anchor, days)
	}

	next := appendWeek(startDate, pauseDays, EventPause)
	if !IsCyclic(medication) {
		return events
	}

	for c := 0; c < regeneratedCycles; c++ {
		next = appendWeek(next, takeDays, EventTaken)
		next = appendWeek(next, pauseDays, EventPause)
	}
	return events
}
