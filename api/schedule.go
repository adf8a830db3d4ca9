package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/schedule"
)

type DayScheduleDto struct {
	Date   string `json:"date"`
	State  string `json:"state"`
	Source string `json:"source"`
}

type SetOverrideDto struct {
	EventType string  `json:"eventType"`
	Notes     *string `json:"notes"`
}

type CalendarEventDto struct {
	Date      string  `json:"date"`
	EventType string  `json:"eventType"`
	Notes     *string `json:"notes,omitempty"`
}

type TherapyPauseDto struct {
	StartDate string `json:"startDate"`
}

type TherapyPauseResultDto struct {
	DatesWritten int `json:"datesWritten"`
}

func (h *Handler) GetSchedule(c echo.Context) error {
	from, err := dateParam(c.QueryParam("from"))
	if err != nil {
		return err
	}
	to, err := dateParam(c.QueryParam("to"))
	if err != nil {
		return err
	}

	days, err := h.schedule.GetScheduleState(c.Request().Context(), c.Param("patientId"), from, to)
	if err != nil {
		return mapError(err)
	}

	dtos := make([]DayScheduleDto, 0, len(days))
	for _, day := range days {
		dtos = append(dtos, DayScheduleDto{
			Date:   dates.Format(day.Date),
			State:  string(day.State),
			Source: string(day.Source),
		})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *Handler) SetOverride(c echo.Context) error {
	date, err := dateParam(c.Param("date"))
	if err != nil {
		return err
	}

	dto := SetOverrideDto{}
	if err := bind(c, &dto); err != nil {
		return err
	}

	event, err := h.schedule.SetOverride(c.Request().Context(), c.Param("patientId"), date, schedule.EventType(dto.EventType), dto.Notes)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, CalendarEventDto{
		Date:      dates.Format(event.Date),
		EventType: string(event.EventType),
		Notes:     event.Notes,
	})
}

func (h *Handler) DeleteOverride(c echo.Context) error {
	date, err := dateParam(c.Param("date"))
	if err != nil {
		return err
	}

	if err := h.schedule.DeleteOverride(c.Request().Context(), c.Param("patientId"), date); err != nil {
		return mapError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetTherapyPause(c echo.Context) error {
	dto := TherapyPauseDto{}
	if err := bind(c, &dto); err != nil {
		return err
	}

	startDate, err := dateParam(dto.StartDate)
	if err != nil {
		return err
	}

	written, err := h.schedule.BulkSetTherapyPauseWeek(c.Request().Context(), c.Param("patientId"), startDate)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, TherapyPauseResultDto{DatesWritten: written})
}
