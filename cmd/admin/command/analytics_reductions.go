package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oncycle-org/adherence/analytics"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/pointer"
)

var reductionsMedication string

var analyticsReductionsCmd = &cobra.Command{
	Use:   "reductions",
	Short: "Reduction timing",
	Long:  "The reductions command prints the mean weeks before the first and second dosage reductions",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(printReductions) },
}

func printReductions(service analytics.Service) error {
	var medication *medications.Medication
	if reductionsMedication != "" {
		medication = pointer.FromAny(medications.Medication(reductionsMedication))
	}

	timings, err := service.Reductions(context.TODO(), medication)
	if err != nil {
		return err
	}

	format := func(value *float64) string {
		if value == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f", *value)
	}

	for _, timing := range timings {
		fmt.Printf("%-12s first %-6s second %-6s\n",
			timing.Medication, format(timing.FirstReduction), format(timing.SecondReduction))
	}

	return nil
}

func init() {
	analyticsReductionsCmd.Flags().StringVar(&reductionsMedication, "medication", "", "Filter by medication")
	analyticsCmd.AddCommand(analyticsReductionsCmd)
}
