package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/discovery"
	"github.com/bmad-labs/bmad/internal/manifest"
	"github.com/bmad-labs/bmad/internal/workspace"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the installed components and installation state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	st, err := manifest.LoadState(workspace.StatePath(cfg.InstalledRoot))
	if err != nil {
		return err
	}
	if st == nil {
		fmt.Fprintln(out, "Not installed yet. Run 'bmad install'.")
		return nil
	}

	fmt.Fprintf(out, "Installed: %s (%s)\n", st.Installation.Version, st.Installation.Date)
	fmt.Fprintf(out, "Modules:   %s\n", strings.Join(st.Modules, ", "))
	fmt.Fprintf(out, "Targets:   %s\n", strings.Join(st.IDEs, ", "))

	components := discovery.Discover(cfg.InstalledRoot, warnToStderr)
	for _, kind := range definition.AllKinds() {
		var names []string
		for _, c := range components {
			if c.Kind == kind {
				names = append(names, c.ID)
			}
		}
		if len(names) > 0 {
			fmt.Fprintf(out, "%-10s %s\n", string(kind)+"s:", strings.Join(names, ", "))
		}
	}
	return nil
}
