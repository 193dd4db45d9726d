package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/femtomc/abstrap/internal/verify"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	SkipTerminators bool
	AllowUnknown    bool
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <script>",
		Short: "Rebuild a tree from a script and run structural checks",
		Long: `Rebuild an operation tree from a script and run the structural
verifier over it. All diagnostics are collected and reported; any
diagnostic makes the command exit with status 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipTerminators, "skip-terminators", false, "skip terminator placement checks")
	cmd.Flags().BoolVar(&opts.AllowUnknown, "allow-unknown", false, "do not report unregistered operations")

	return cmd
}

func runVerify(opts *VerifyOptions, scriptPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	reg, err := buildRegistry(opts.RootOptions, formatter)
	if err != nil {
		formatter.Error(ErrCodeDialect, err.Error(), nil)
		return err
	}

	_, op, err := loadAndBuild(scriptPath, reg, formatter)
	if err != nil {
		formatter.Error(ErrCodeBuild, err.Error(), nil)
		return err
	}

	vopts := verify.Options{
		Registry:          reg,
		RequireRegistered: !opts.AllowUnknown,
		CheckTerminators:  !opts.SkipTerminators,
	}
	diags := verify.Verify(op, vopts)

	if len(diags) == 0 {
		if opts.Format == "json" {
			return formatter.Success(map[string]any{
				"valid":       true,
				"diagnostics": []verify.Diagnostic{},
			})
		}
		return formatter.SuccessText("OK\n", nil)
	}

	if opts.Format == "json" {
		formatter.Success(map[string]any{
			"valid":       false,
			"diagnostics": diags,
		})
	} else {
		var sb strings.Builder
		for _, d := range diags {
			fmt.Fprintf(&sb, "%s\n", d.Error())
		}
		fmt.Fprintf(&sb, "%d diagnostic(s)\n", len(diags))
		formatter.SuccessText(sb.String(), nil)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("verification failed with %d diagnostic(s)", len(diags)))
}
