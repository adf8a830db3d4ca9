package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oncycle-org/adherence/alerts"
)

type AlertDto struct {
	Id          string    `json:"id"`
	PatientId   string    `json:"patientId"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Severity    string    `json:"severity"`
	Resolved    bool      `json:"resolved"`
	CreatedTime time.Time `json:"createdTime"`
}

func newAlertDto(alert *alerts.Alert) AlertDto {
	return AlertDto{
		Id:          alert.Id.Hex(),
		PatientId:   alert.PatientId.Hex(),
		Type:        string(alert.Type),
		Message:     alert.Message,
		Severity:    string(alert.Severity),
		Resolved:    alert.Resolved,
		CreatedTime: alert.CreatedTime,
	}
}

func (h *Handler) ListAlerts(c echo.Context) error {
	var clinicianId *string
	if value := c.QueryParam("clinicianId"); value != "" {
		clinicianId = &value
	}

	active, err := h.alerts.ListActive(c.Request().Context(), clinicianId, pagination(c))
	if err != nil {
		return mapError(err)
	}

	dtos := make([]AlertDto, 0, len(active))
	for _, alert := range active {
		dtos = append(dtos, newAlertDto(alert))
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *Handler) ResolveAlert(c echo.Context) error {
	if err := h.alerts.Resolve(c.Request().Context(), c.Param("alertId")); err != nil {
		return mapError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
