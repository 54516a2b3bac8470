package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/scaffold"
)

var createModule string

var createCmd = &cobra.Command{
	Use:   "create <kind> <id>",
	Short: "Scaffold a new component source",
	Long: `Create writes a stub source for a new component into the installed root:
a base definition for agents, or a descriptor file for skills, tasks, and
workflows. Kinds: agent, skill, task, workflow.`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createModule, "module", "m", "core", "Module the component belongs to")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	kind, ok := definition.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("unknown kind %q (agent, skill, task, workflow)", args[0])
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	res, err := scaffold.Generate(cfg.InstalledRoot, kind, scaffold.New(kind, createModule, args[1]))
	if err != nil {
		return err
	}

	for _, f := range res.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", f)
	}
	return nil
}
