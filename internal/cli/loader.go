package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/femtomc/abstrap/internal/dialect"
	"github.com/femtomc/abstrap/internal/ir"
	"github.com/femtomc/abstrap/internal/script"
)

// buildRegistry compiles any --dialect files and registers them on top
// of the default registry.
func buildRegistry(opts *RootOptions, formatter *OutputFormatter) (*dialect.Registry, error) {
	reg := dialect.DefaultRegistry()
	for _, path := range opts.Dialects {
		d, err := dialect.CompileFile(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("dialect %s", path), err)
		}
		formatter.VerboseLog("Registered dialect %q from %s", d.Name(), path)
		reg.Register(d)
	}
	return reg, nil
}

// loadAndBuild loads a script document and rebuilds its operation tree
// against the registry.
func loadAndBuild(path string, reg *dialect.Registry, formatter *OutputFormatter) (*script.Document, *ir.Operation, error) {
	doc, err := script.Load(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load script", err)
	}
	formatter.VerboseLog("Loaded script %s (root intrinsic %s)", path, doc.Operation.Intrinsic)

	op, err := script.Build(doc, reg.Resolve)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "build tree", err)
	}
	return doc, op, nil
}

// newFormatter wires a formatter to the command's output streams.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // verbose logs avoid corrupting JSON output
		Verbose:   opts.Verbose,
	}
}
