package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/femtomc/abstrap/internal/store"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	DBPath string
	Name   string
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save <script>",
		Short: "Persist a script's tree into a module database",
		Long: `Rebuild an operation tree from a script and persist it into a
module database. Saves are deduplicated by content fingerprint: saving
a tree that is already stored returns the existing entry.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "abstrap.db", "module database path")
	cmd.Flags().StringVar(&opts.Name, "name", "", "module name (defaults to the script name, then the file stem)")

	return cmd
}

func runSave(opts *SaveOptions, scriptPath string, cmd *cobra.Command) error {
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

	name := opts.Name
	if name == "" {
		name = doc.Name
	}
	if name == "" {
		base := filepath.Base(scriptPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	db, err := store.Open(opts.DBPath)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer db.Close()

	m, err := db.Save(cmd.Context(), name, op)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "save module", err)
	}

	text := fmt.Sprintf("Saved %s as %s (fingerprint %s)\n", name, m.ID, m.Fingerprint)
	if m.Name != name {
		text = fmt.Sprintf("Already stored as %s (%s, fingerprint %s)\n", m.Name, m.ID, m.Fingerprint)
	}
	return formatter.SuccessText(text, m)
}
