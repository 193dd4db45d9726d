package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/femtomc/abstrap/internal/ir"
)

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <script>",
		Short: "Print the content fingerprint of a script's tree",
		Long: `Rebuild an operation tree from a script and print its
domain-separated content fingerprint. Two scripts that rebuild to the
same tree produce the same fingerprint.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runHash(opts *RootOptions, scriptPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	reg, err := buildRegistry(opts, formatter)
	if err != nil {
		formatter.Error(ErrCodeDialect, err.Error(), nil)
		return err
	}

	_, op, err := loadAndBuild(scriptPath, reg, formatter)
	if err != nil {
		formatter.Error(ErrCodeBuild, err.Error(), nil)
		return err
	}

	fp, err := ir.Fingerprint(op)
	if err != nil {
		formatter.Error(ErrCodeBuild, err.Error(), nil)
		return WrapExitError(ExitCommandError, "fingerprint", err)
	}

	return formatter.SuccessText(fmt.Sprintf("%s\n", fp), map[string]any{
		"fingerprint": fp,
	})
}
