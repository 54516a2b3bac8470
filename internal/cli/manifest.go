package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Regenerate the component manifests from disk",
	Long: `Manifest rescans the installed root and rewrites every manifest file from
scratch. Rows for components no longer on disk are dropped; running it twice
with no filesystem change produces byte-identical files.`,
	Args: cobra.NoArgs,
	RunE: runManifest,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	summary, err := manifest.Generate(cfg.InstalledRoot, nil, nil, manifest.Options{
		Version: buildVersion,
		Date:    time.Now().UTC().Format("2006-01-02"),
		Warn:    warnToStderr,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, kind := range definition.AllKinds() {
		fmt.Fprintf(out, "  %-9s %d\n", string(kind)+"s:", summary.Counts[kind])
	}
	fmt.Fprintf(out, "Regenerated %d manifest rows.\n", summary.Total)
	return nil
}
