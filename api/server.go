package api

import (
	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/errors"
)

func NewServer(handler *Handler, healthCheck *HealthCheck, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(logger))

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	RegisterRoutes(e, handler)

	return e, nil
}

func RegisterRoutes(e *echo.Echo, handler *Handler) {
	v1 := e.Group("/v1")

	v1.POST("/patients", handler.CreatePatient)
	v1.GET("/patients", handler.ListPatients)
	v1.GET("/patients/:patientId", handler.GetPatient)
	v1.PUT("/patients/:patientId", handler.UpdatePatient)
	v1.DELETE("/patients/:patientId", handler.DeactivatePatient)

	v1.GET("/patients/:patientId/schedule", handler.GetSchedule)
	v1.PUT("/patients/:patientId/calendar/:date", handler.SetOverride)
	v1.DELETE("/patients/:patientId/calendar/:date", handler.DeleteOverride)
	v1.POST("/patients/:patientId/calendar/therapy_pause", handler.SetTherapyPause)

	v1.POST("/patients/:patientId/dosage_changes", handler.RecordDosageChange)
	v1.GET("/patients/:patientId/dosage_history", handler.GetDosageHistory)
	v1.GET("/patients/:patientId/treatment_weeks", handler.GetTreatmentWeeks)

	v1.POST("/patients/:patientId/missed_doses", handler.ReportMissedDoses)
	v1.DELETE("/patients/:patientId/missed_doses/:date", handler.RetractMissedDose)
	v1.GET("/patients/:patientId/adherence", handler.GetAdherence)

	v1.POST("/patients/:patientId/symptoms", handler.SubmitSymptoms)

	v1.GET("/alerts", handler.ListAlerts)
	v1.POST("/alerts/:alertId/resolve", handler.ResolveAlert)

	v1.GET("/analytics/dosages", handler.GetDosageBreakdown)
	v1.GET("/analytics/reductions", handler.GetReductionTimings)
	v1.GET("/analytics/symptoms/:symptomType", handler.GetSymptomBreakdown)
	v1.GET("/analytics/population", handler.GetPopulationSummary)
}
