package symptoms

import (
	"fmt"

	"github.com/oncycle-org/adherence/alerts"
)

const (
	intensityAlertThreshold = 7
	diarrheaCountThreshold  = 3
)

// EvaluateTriggers applies the alert threshold rules to one observation.
// The checks are independent; a single observation may raise zero, one or
// several alerts.
func EvaluateTriggers(observation Observation) []alerts.Alert {
	var raised []alerts.Alert

	if observation.Intensity != nil && *observation.Intensity > intensityAlertThreshold {
		raised = append(raised, alerts.Alert{
			PatientId: observation.PatientId,
			Type:      alerts.TypeSymptom,
			Severity:  alerts.SeverityHigh,
			Message:   fmt.Sprintf("%s reported with intensity %d", observation.Type, *observation.Intensity),
		})
	}

	if observation.Type == SymptomDiarrhea && observation.Count != nil && *observation.Count >= diarrheaCountThreshold {
		raised = append(raised, alerts.Alert{
			PatientId: observation.PatientId,
			Type:      alerts.TypeSymptom,
			Severity:  alerts.SeverityHigh,
			Message:   fmt.Sprintf("%s reported %d episodes in one day", observation.Type, *observation.Count),
		})
	}

	return raised
}
