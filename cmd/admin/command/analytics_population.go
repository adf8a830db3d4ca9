package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oncycle-org/adherence/analytics"
)

var analyticsPopulationCmd = &cobra.Command{
	Use:   "population",
	Short: "Population summary",
	Long:  "The population command prints patient counts and mean treatment weeks per setting",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(printPopulation) },
}

func printPopulation(service analytics.Service) error {
	summary, err := service.Population(context.TODO())
	if err != nil {
		return err
	}

	for _, setting := range summary.Settings {
		fmt.Printf("%-12s %4d patients %6.1f weeks on treatment\n",
			setting.TreatmentSetting, setting.PatientCount, setting.AverageWeeksOnTreatment)
	}
	fmt.Printf("Found %v patients\n", summary.TotalPatients)

	return nil
}

func init() {
	analyticsCmd.AddCommand(analyticsPopulationCmd)
}
