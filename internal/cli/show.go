package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/femtomc/abstrap/internal/printer"
	"github.com/femtomc/abstrap/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	DBPath string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Rebuild and print a stored module",
		Long: `Look up a stored module by id (falling back to name), rebuild its
tree from the stored document, and print it. The rebuilt tree's
fingerprint is checked against the stored one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "abstrap.db", "module database path")

	return cmd
}

func runShow(opts *ShowOptions, ref string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	reg, err := buildRegistry(opts.RootOptions, formatter)
	if err != nil {
		formatter.Error(ErrCodeDialect, err.Error(), nil)
		return err
	}

	db, err := store.Open(opts.DBPath)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	m, err := db.Get(ctx, ref)
	if errors.Is(err, store.ErrNotFound) {
		m, err = db.GetByName(ctx, ref)
	}
	if errors.Is(err, store.ErrNotFound) {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "show module", err)
	}
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "show module", err)
	}

	op, err := db.LoadOperation(ctx, m.ID, reg.Resolve)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "show module", err)
	}

	text, err := printer.Print(op)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "print tree", err)
	}

	return formatter.SuccessText(text, map[string]any{
		"module":  m,
		"printed": text,
	})
}
