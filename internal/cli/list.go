package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/femtomc/abstrap/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	DBPath string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored modules",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "abstrap.db", "module database path")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	db, err := store.Open(opts.DBPath)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer db.Close()

	modules, err := db.List(cmd.Context())
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list modules", err)
	}

	if opts.Format == "json" {
		if modules == nil {
			modules = []store.Module{}
		}
		return formatter.Success(map[string]any{"modules": modules})
	}

	if len(modules) == 0 {
		return formatter.SuccessText("No modules stored.\n", nil)
	}

	var sb strings.Builder
	for _, m := range modules {
		fmt.Fprintf(&sb, "%s  %s  %s\n", m.ID, m.Fingerprint[:12], m.Name)
	}
	return formatter.SuccessText(sb.String(), nil)
}
