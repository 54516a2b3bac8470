package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the project configuration and variable table",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Project root:   %s\n", cfg.ProjectRoot)
	fmt.Fprintf(out, "Installed root: %s\n", cfg.InstalledRoot)

	vars := cfg.Variables()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(out, "Variables:")
	for _, k := range keys {
		fmt.Fprintf(out, "  {%s} = %s\n", k, vars[k])
	}
	return nil
}
