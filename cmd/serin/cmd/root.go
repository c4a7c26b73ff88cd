package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "serin",
	Short: "Serin assistive-technology host",
	Long: `Serin binds each running foreground application to an optional
per-application behavior extension and manages that extension's lifecycle
alongside the process it is bound to.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: env-only configuration)")
}
