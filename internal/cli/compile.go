package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bmad-labs/bmad/internal/compiler"
)

var (
	compileOverlay string
	compileOutput  string
)

var compileCmd = &cobra.Command{
	Use:   "compile <definition.yaml>",
	Short: "Compile a single component definition",
	Long: `Compile merges a base definition with an optional customization overlay,
resolves {placeholder} variables from the project configuration, and writes
the compiled artifact. Without --output the artifact lands next to the
definition with a .md extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&compileOverlay, "overlay", "", "Customization overlay file")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "Output path for the compiled artifact")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	defPath := args[0]

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	outPath := compileOutput
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(defPath), filepath.Ext(defPath))
		base = strings.TrimSuffix(base, ".agent")
		outPath = filepath.Join(filepath.Dir(defPath), base+".md")
	}

	res, err := compiler.Compile(defPath, compileOverlay, outPath, compiler.Options{
		Variables: cfg.Variables(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Compiled %s %s → %s\n", res.Kind, res.ID, res.OutputPath)
	return nil
}
