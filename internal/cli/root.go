package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmad-labs/bmad/internal/branding"
	"github.com/bmad-labs/bmad/internal/config"
	"github.com/bmad-labs/bmad/internal/workspace"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` compiles declarative component definitions (agents, skills,
tasks, workflows) into per-target runnable artifacts and keeps the installed
manifests consistent across repeated, incremental installs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// loadProjectConfig resolves the project root from the working directory and
// loads its configuration. Shared by every command that touches a project.
func loadProjectConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	root, err := workspace.FindProjectRoot(cwd)
	if err != nil {
		return nil, err
	}
	return config.Load(root)
}

// warnToStderr is the discovery warning sink used by all commands.
func warnToStderr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
