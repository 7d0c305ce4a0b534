package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "microwavectl",
	Short: "Administer the microwave heating service",
	Long: `Offline administration for the microwave service. It opens the same
database and program store as the server, as selected by the config file.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default configs/config.yml)")
}
