package cmd

import (
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the Meet server is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.CheckHealth(cmd.Context(), apiClient())
	},
}
