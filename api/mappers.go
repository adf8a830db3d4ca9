package api

import (
	stderrors "errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oncycle-org/adherence/alerts"
	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/dosages"
	"github.com/oncycle-org/adherence/errors"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/reports"
	"github.com/oncycle-org/adherence/schedule"
	"github.com/oncycle-org/adherence/symptoms"
)

// notFound and validation list the domain sentinels each HTTP status maps
// to. Anything unmapped surfaces as an internal server error through the
// echo error handler.
var notFound = []error{
	patients.ErrNotFound,
	alerts.ErrNotFound,
	reports.ErrNotFound,
	reports.ErrNoMissedDate,
	schedule.ErrOverrideNotFound,
	dosages.ErrNoOpenEntry,
}

var validation = []error{
	patients.ErrUnknownMedication,
	patients.ErrUnknownSetting,
	medications.ErrInvalidDosage,
	dates.ErrMalformedDate,
	schedule.ErrUnknownEventType,
	schedule.ErrInvalidDateRange,
	schedule.ErrDateRangeTooLong,
	dosages.ErrInvalidEffectiveDate,
	reports.ErrEmptyDates,
	symptoms.ErrUnknownSymptomType,
	symptoms.ErrInvalidObservation,
}

var constraint = []error{
	patients.ErrDuplicate,
	dosages.ErrMultipleOpenEntries,
	dosages.ErrDosageMismatch,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range notFound {
		if stderrors.Is(err, sentinel) {
			return errors.Wrap(errors.NotFound, err)
		}
	}
	for _, sentinel := range validation {
		if stderrors.Is(err, sentinel) {
			return errors.Wrap(errors.BadRequest, err)
		}
	}
	for _, sentinel := range constraint {
		if stderrors.Is(err, sentinel) {
			return errors.Wrap(errors.ConstraintViolation, err)
		}
	}
	return err
}

// dateParam parses a YYYY-MM-DD path or query value.
func dateParam(value string) (t time.Time, err error) {
	t, err = dates.Parse(value)
	if err != nil {
		err = errors.Wrap(errors.BadRequest, err)
	}
	return
}

func bind(c echo.Context, dto any) error {
	if err := c.Bind(dto); err != nil {
		return errors.Wrap(errors.BadRequest, stderrors.New("malformed request body"))
	}
	return nil
}
