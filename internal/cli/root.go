package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "healthjournal",
	Short: "Daily health journal with nutrition and fasting analytics",
	Long:  "Healthjournal turns free-text daily notes into structured nutrition, exercise, and fasting trends. Single Go binary, local SQLite storage.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(profileCmd)
}
