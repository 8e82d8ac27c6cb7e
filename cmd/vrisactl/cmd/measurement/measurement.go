package measurement

import (
	"github.com/spf13/cobra"
)

// MeasurementCmd is the parent command for measurement operations
var MeasurementCmd = &cobra.Command{
	Use:     "measurement",
	Aliases: []string{"measure"},
	Short:   "Query air-quality measurements",
	Long:    `Commands for measured variables, historical series, latest readings and the current AQI.`,
}

func init() {
	MeasurementCmd.AddCommand(variablesCmd)
	MeasurementCmd.AddCommand(historyCmd)
	MeasurementCmd.AddCommand(aqiCmd)
	MeasurementCmd.AddCommand(latestCmd)
}
