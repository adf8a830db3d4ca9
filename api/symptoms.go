package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oncycle-org/adherence/symptoms"
)

type ObservationDto struct {
	Type             string   `json:"type"`
	Present          bool     `json:"present"`
	Intensity        *int     `json:"intensity"`
	Count            *int     `json:"count"`
	FeverTemperature *float64 `json:"feverTemperature"`
	FeverChills      *bool    `json:"feverChills"`
}

type SubmitSymptomsDto struct {
	Date         string           `json:"date"`
	Observations []ObservationDto `json:"observations"`
}

type SubmitSymptomsResultDto struct {
	RaisedAlerts []AlertDto `json:"raisedAlerts"`
}

func (h *Handler) SubmitSymptoms(c echo.Context) error {
	dto := SubmitSymptomsDto{}
	if err := bind(c, &dto); err != nil {
		return err
	}

	date, err := dateParam(dto.Date)
	if err != nil {
		return err
	}

	observations := make([]symptoms.Observation, 0, len(dto.Observations))
	for _, observation := range dto.Observations {
		observations = append(observations, symptoms.Observation{
			Type:             symptoms.SymptomType(observation.Type),
			Present:          observation.Present,
			Intensity:        observation.Intensity,
			Count:            observation.Count,
			FeverTemperature: observation.FeverTemperature,
			FeverChills:      observation.FeverChills,
		})
	}

	raised, err := h.symptoms.Submit(c.Request().Context(), c.Param("patientId"), date, observations)
	if err != nil {
		return mapError(err)
	}

	result := SubmitSymptomsResultDto{RaisedAlerts: make([]AlertDto, 0, len(raised))}
	for _, alert := range raised {
		result.RaisedAlerts = append(result.RaisedAlerts, newAlertDto(alert))
	}
	return c.JSON(http.StatusCreated, result)
}
