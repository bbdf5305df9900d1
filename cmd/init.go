package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/previewkit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize previewkit configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure previewkit for your project and generates a .previewkit.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
