package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmad-labs/bmad/internal/branding"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n",
			branding.CLIName(), buildVersion, buildCommit, buildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
