package cmd

import (
	"fmt"

	"github.com/RicardoYam/Meet/pkg/client"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/RicardoYam/Meet/internal/cmd.Version=..."
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Meet CLI v%s (%s)\n", Version, client.UserAgent)
	},
}
