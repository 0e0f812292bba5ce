package main

import "github.com/spf13/cobra"

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare incident rates between circular regions",
	Long: "Counts incidents inside circles drawn around one or two centers and tests whether " +
		"the incident rates (per km²) differ using a Poisson rate-ratio test.",
}

func init() {
	addDataFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}
