package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oncycle-org/adherence/alerts"
	"github.com/oncycle-org/adherence/store"
)

var alertsClinicianId string

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List active alerts",
	Long:  "The alerts command is used to retrieve the unresolved clinical alerts",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(listAlerts) },
}

func listAlerts(service alerts.Service) error {
	var clinicianId *string
	if alertsClinicianId != "" {
		clinicianId = &alertsClinicianId
	}

	page := store.DefaultPagination().WithLimit(1000)
	active, err := service.ListActive(context.TODO(), clinicianId, page)
	if err != nil {
		return err
	}

	for _, alert := range active {
		fmt.Printf("%s %-8s %-8s %s\n", alert.Id.Hex(), alert.Severity, alert.Type, alert.Message)
	}
	fmt.Printf("Found %v alerts\n", len(active))

	return nil
}

func init() {
	alertsCmd.Flags().StringVar(&alertsClinicianId, "clinician", "", "Filter by clinician id")
	rootCmd.AddCommand(alertsCmd)
}
