package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/hotspot/internal/report"
)

var offensesCmd = &cobra.Command{
	Use:   "offenses",
	Short: "List offense categories and the date range of an incident file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		records, err := loadRecords(cmd.Context())
		if err != nil {
			return err
		}
		return report.WriteOffenses(cmd.OutOrStdout(), format, report.Offenses(records))
	},
}

func init() {
	addDataFlags(offensesCmd)
	rootCmd.AddCommand(offensesCmd)
}
