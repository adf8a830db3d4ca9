package command

import (
	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Population analytics",
	Long:  "The analytics command is used to inspect population-level rollups",
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}
