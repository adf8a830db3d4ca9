package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oncycle-org/adherence/analytics"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/pointer"
)

var dosagesMedication string
var dosagesSetting string

var analyticsDosagesCmd = &cobra.Command{
	Use:   "dosages",
	Short: "Dosage breakdown",
	Long:  "The dosages command prints the per-dosage patient counts and mean weeks",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(printDosageBreakdown) },
}

func printDosageBreakdown(service analytics.Service) error {
	filter := &analytics.Filter{}
	if dosagesMedication != "" {
		filter.Medication = pointer.FromAny(medications.Medication(dosagesMedication))
	}
	if dosagesSetting != "" {
		filter.TreatmentSetting = pointer.FromAny(medications.TreatmentSetting(dosagesSetting))
	}

	groups, err := service.DosageBreakdown(context.TODO(), filter)
	if err != nil {
		return err
	}

	for _, group := range groups {
		fmt.Printf("%-12s %-12s %-8s %4d patients %6.1f weeks\n",
			group.Medication, group.TreatmentSetting, group.Dosage, group.PatientCount, group.AverageWeeks)
	}
	fmt.Printf("Found %v dosage groups\n", len(groups))

	return nil
}

func init() {
	analyticsDosagesCmd.Flags().StringVar(&dosagesMedication, "medication", "", "Filter by medication")
	analyticsDosagesCmd.Flags().StringVar(&dosagesSetting, "setting", "", "Filter by treatment setting")
	analyticsCmd.AddCommand(analyticsDosagesCmd)
}
