package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "gamelytics",
	Short: "League of Legends game statistics backend",
	Long:  `Gamelytics tracks players, stores their match history, computes performance analytics, and scouts live games with enemy threat analysis and build recommendations.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
}
