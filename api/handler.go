package api

import (
	"go.uber.org/fx"

	"github.com/oncycle-org/adherence/alerts"
	"github.com/oncycle-org/adherence/analytics"
	"github.com/oncycle-org/adherence/dosages"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/reports"
	"github.com/oncycle-org/adherence/schedule"
	"github.com/oncycle-org/adherence/symptoms"
)

type Handler struct {
	patients  patients.Service
	schedule  schedule.Service
	dosages   dosages.Service
	reports   reports.Service
	symptoms  symptoms.Service
	alerts    alerts.Service
	analytics analytics.Service
}

type Params struct {
	fx.In

	Patients  patients.Service
	Schedule  schedule.Service
	Dosages   dosages.Service
	Reports   reports.Service
	Symptoms  symptoms.Service
	Alerts    alerts.Service
	Analytics analytics.Service
}

func NewHandler(p Params) *Handler {
	return &Handler{
		patients:  p.Patients,
		schedule:  p.Schedule,
		dosages:   p.Dosages,
		reports:   p.Reports,
		symptoms:  p.Symptoms,
		alerts:    p.Alerts,
		analytics: p.Analytics,
	}
}
