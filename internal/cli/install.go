package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/installer"
)

var (
	installModules []string
	installIDEs    []string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Compile agents and regenerate manifests for the project",
	Long: `Install runs a full pass over the project's installed root: it compiles
every agent definition in the selected modules, regenerates the component
manifests from disk, merges the per-module help catalogs, and updates each
configured integration target.

With no flags, the module and target selection from the previous install is
reused; a fresh project installs every module found on disk.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringSliceVarP(&installModules, "module", "m", nil, "Module to install (repeatable; default: prior selection)")
	installCmd.Flags().StringSliceVar(&installIDEs, "ide", nil, "Integration target to set up (repeatable; default: prior selection)")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	report, err := installer.Run(cmd.Context(), cfg, installer.Options{
		Version: buildVersion,
		Modules: installModules,
		Targets: installIDEs,
		Warn:    warnToStderr,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if report.FreshInstall {
		fmt.Fprintln(out, "Fresh install.")
	} else if report.PriorVersion != "" && report.PriorVersion != buildVersion {
		fmt.Fprintf(out, "Upgrading from %s.\n", report.PriorVersion)
	}

	for _, res := range report.Compiled {
		fmt.Fprintf(out, "  ✓ agent %s (%s)\n", res.ID, filepath.Base(res.OutputPath))
	}
	for _, fail := range report.Failed {
		fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(fail.Definition), fail.Err)
	}

	fmt.Fprintf(out, "Manifests: %d agents, %d skills, %d tasks, %d workflows.\n",
		report.Manifest.Counts[definition.KindAgent],
		report.Manifest.Counts[definition.KindSkill],
		report.Manifest.Counts[definition.KindTask],
		report.Manifest.Counts[definition.KindWorkflow])

	if report.Catalog != nil {
		fmt.Fprintf(out, "Help catalog: %d commands (%d duplicates merged).\n",
			report.Catalog.Rows, report.Catalog.Duplicates)
	}
	for _, target := range report.Targets {
		fmt.Fprintf(out, "Target %s: %d artifacts installed.\n", target.Target, len(target.Created))
		for _, w := range target.Warnings {
			fmt.Fprintf(out, "  ! %s\n", w)
		}
	}

	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d agents failed to compile", len(report.Failed),
			len(report.Failed)+len(report.Compiled))
	}
	return nil
}
