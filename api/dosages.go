package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/dosages"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/pointer"
)

type DosageChangeDto struct {
	Medication    string `json:"medication"`
	Dosage        string `json:"dosage"`
	EffectiveDate string `json:"effectiveDate"`
}

type HistoryEntryDto struct {
	Medication       string  `json:"medication"`
	Dosage           string  `json:"dosage"`
	TreatmentSetting string  `json:"treatmentSetting"`
	StartDate        string  `json:"startDate"`
	EndDate          *string `json:"endDate,omitempty"`
	WeeksOnDosage    *int    `json:"weeksOnDosage,omitempty"`
}

type TreatmentWeeksDto struct {
	WeeksOnTreatment     int `json:"weeksOnTreatment"`
	WeeksOnCurrentDosage int `json:"weeksOnCurrentDosage"`
}

func newHistoryEntryDto(entry *dosages.HistoryEntry) HistoryEntryDto {
	dto := HistoryEntryDto{
		Medication:       string(entry.Medication),
		Dosage:           entry.Dosage,
		TreatmentSetting: string(entry.TreatmentSetting),
		StartDate:        dates.Format(entry.StartDate),
		WeeksOnDosage:    entry.WeeksOnDosage,
	}
	if entry.EndDate != nil {
		dto.EndDate = pointer.FromAny(dates.Format(*entry.EndDate))
	}
	return dto
}

func (h *Handler) RecordDosageChange(c echo.Context) error {
	dto := DosageChangeDto{}
	if err := bind(c, &dto); err != nil {
		return err
	}

	effectiveDate, err := dateParam(dto.EffectiveDate)
	if err != nil {
		return err
	}

	entry, err := h.dosages.RecordDosageChange(c.Request().Context(), c.Param("patientId"), medications.Medication(dto.Medication), dto.Dosage, effectiveDate)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, newHistoryEntryDto(entry))
}

func (h *Handler) GetDosageHistory(c echo.Context) error {
	entries, err := h.dosages.History(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return mapError(err)
	}

	dtos := make([]HistoryEntryDto, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, newHistoryEntryDto(entry))
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *Handler) GetTreatmentWeeks(c echo.Context) error {
	ctx := c.Request().Context()
	patientId := c.Param("patientId")

	onTreatment, err := h.dosages.WeeksOnTreatment(ctx, patientId)
	if err != nil {
		return mapError(err)
	}
	onCurrentDosage, err := h.dosages.WeeksOnCurrentDosage(ctx, patientId)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, TreatmentWeeksDto{
		WeeksOnTreatment:     onTreatment,
		WeeksOnCurrentDosage: onCurrentDosage,
	})
}
