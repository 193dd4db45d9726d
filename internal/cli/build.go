package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/femtomc/abstrap/internal/printer"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Output string // output file path
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <script>",
		Short: "Rebuild an operation tree from a script and print it",
		Long: `Rebuild an operation tree from a rebuild script (YAML or JSON).

The script's construction sequence is re-driven through the operation
builder and the resulting tree is printed in textual form.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runBuild(opts *BuildOptions, scriptPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	reg, err := buildRegistry(opts.RootOptions, formatter)
	if err != nil {
		formatter.Error(ErrCodeDialect, err.Error(), nil)
		return err
	}

	doc, op, err := loadAndBuild(scriptPath, reg, formatter)
	if err != nil {
		formatter.Error(ErrCodeBuild, err.Error(), nil)
		return err
	}

	text, err := printer.Print(op)
	if err != nil {
		formatter.Error(ErrCodeBuild, err.Error(), nil)
		return WrapExitError(ExitCommandError, "print tree", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(text), 0o644); err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "write output", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
		return nil
	}

	return formatter.SuccessText(text, map[string]any{
		"name":    doc.Name,
		"printed": text,
	})
}
