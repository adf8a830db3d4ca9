package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/reports"
)

type MissedDosesDto struct {
	Dates []string `json:"dates"`
	Notes *string  `json:"notes"`
}

type ReportDto struct {
	Id          string   `json:"id"`
	MissedDates []string `json:"missedDates"`
	Notes       *string  `json:"notes,omitempty"`
}

type AdherenceDto struct {
	AdherencePercentage float64 `json:"adherencePercentage"`
}

func newReportDto(report *reports.Report) ReportDto {
	missed := make([]string, 0, len(report.MissedDates))
	for _, date := range report.MissedDates {
		missed = append(missed, dates.Format(date))
	}
	return ReportDto{
		Id:          report.Id.Hex(),
		MissedDates: missed,
		Notes:       report.Notes,
	}
}

func (h *Handler) ReportMissedDoses(c echo.Context) error {
	dto := MissedDosesDto{}
	if err := bind(c, &dto); err != nil {
		return err
	}

	missed := make([]time.Time, 0, len(dto.Dates))
	for _, value := range dto.Dates {
		date, err := dateParam(value)
		if err != nil {
			return err
		}
		missed = append(missed, date)
	}

	report, err := h.reports.Report(c.Request().Context(), c.Param("patientId"), missed, dto.Notes)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, newReportDto(report))
}

func (h *Handler) RetractMissedDose(c echo.Context) error {
	date, err := dateParam(c.Param("date"))
	if err != nil {
		return err
	}

	if err := h.reports.Retract(c.Request().Context(), c.Param("patientId"), date); err != nil {
		return mapError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetAdherence(c echo.Context) error {
	percentage, err := h.reports.AdherencePercentage(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, AdherenceDto{AdherencePercentage: percentage})
}
