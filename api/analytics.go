package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oncycle-org/adherence/analytics"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/symptoms"
)

type DosageGroupDto struct {
	Medication       string  `json:"medication"`
	TreatmentSetting string  `json:"treatmentSetting"`
	Dosage           string  `json:"dosage"`
	PatientCount     int     `json:"patientCount"`
	AverageWeeks     float64 `json:"averageWeeks"`
}

type ReductionTimingDto struct {
	Medication      string   `json:"medication"`
	FirstReduction  *float64 `json:"firstReduction"`
	SecondReduction *float64 `json:"secondReduction"`
}

type SymptomGroupDto struct {
	Medication       string  `json:"medication"`
	Dosage           string  `json:"dosage"`
	PatientCount     int     `json:"patientCount"`
	SeverePercentage float64 `json:"severePercentage"`
}

type SettingSummaryDto struct {
	TreatmentSetting        string  `json:"treatmentSetting"`
	PatientCount            int     `json:"patientCount"`
	AverageWeeksOnTreatment float64 `json:"averageWeeksOnTreatment"`
}

type PopulationSummaryDto struct {
	TotalPatients int                 `json:"totalPatients"`
	Settings      []SettingSummaryDto `json:"settings"`
}

func analyticsFilter(c echo.Context) *analytics.Filter {
	filter := &analytics.Filter{}
	if medication := c.QueryParam("medication"); medication != "" {
		filter.Medication = pointer.FromAny(medications.Medication(medication))
	}
	if setting := c.QueryParam("setting"); setting != "" {
		filter.TreatmentSetting = pointer.FromAny(medications.TreatmentSetting(setting))
	}
	return filter
}

func (h *Handler) GetDosageBreakdown(c echo.Context) error {
	groups, err := h.analytics.DosageBreakdown(c.Request().Context(), analyticsFilter(c))
	if err != nil {
		return mapError(err)
	}

	dtos := make([]DosageGroupDto, 0, len(groups))
	for _, group := range groups {
		dtos = append(dtos, DosageGroupDto{
			Medication:       string(group.Medication),
			TreatmentSetting: string(group.TreatmentSetting),
			Dosage:           group.Dosage,
			PatientCount:     group.PatientCount,
			AverageWeeks:     group.AverageWeeks,
		})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *Handler) GetReductionTimings(c echo.Context) error {
	timings, err := h.analytics.Reductions(c.Request().Context(), analyticsFilter(c).Medication)
	if err != nil {
		return mapError(err)
	}

	dtos := make([]ReductionTimingDto, 0, len(timings))
	for _, timing := range timings {
		dtos = append(dtos, ReductionTimingDto{
			Medication:      string(timing.Medication),
			FirstReduction:  timing.FirstReduction,
			SecondReduction: timing.SecondReduction,
		})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *Handler) GetSymptomBreakdown(c echo.Context) error {
	symptomType := symptoms.SymptomType(c.Param("symptomType"))

	groups, err := h.analytics.SymptomByDosage(c.Request().Context(), symptomType, analyticsFilter(c).TreatmentSetting)
	if err != nil {
		return mapError(err)
	}

	dtos := make([]SymptomGroupDto, 0, len(groups))
	for _, group := range groups {
		dtos = append(dtos, SymptomGroupDto{
			Medication:       string(group.Medication),
			Dosage:           group.Dosage,
			PatientCount:     group.PatientCount,
			SeverePercentage: group.SeverePercentage,
		})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *Handler) GetPopulationSummary(c echo.Context) error {
	summary, err := h.analytics.Population(c.Request().Context())
	if err != nil {
		return mapError(err)
	}

	dto := PopulationSummaryDto{
		TotalPatients: summary.TotalPatients,
		Settings:      make([]SettingSummaryDto, 0, len(summary.Settings)),
	}
	for _, setting := range summary.Settings {
		dto.Settings = append(dto.Settings, SettingSummaryDto{
			TreatmentSetting:        string(setting.TreatmentSetting),
			PatientCount:            setting.PatientCount,
			AverageWeeksOnTreatment: setting.AverageWeeksOnTreatment,
		})
	}
	return c.JSON(http.StatusOK, dto)
}
