package dialect

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/femtomc/abstrap/internal/ir"
)

// CompileError represents an error in a dialect declaration.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Compile parses a CUE value into a Dialect. The value should be the
// dialect struct itself:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`name: "base", ops: { ... }`)
//	d, err := dialect.Compile(v)
func Compile(v cue.Value) (*Dialect, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "dialect name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	d := &Dialect{name: name, ops: make(map[string]*OpSpec)}

	opsVal := v.LookupPath(cue.ParsePath("ops"))
	if !opsVal.Exists() {
		return nil, &CompileError{
			Field:   "ops",
			Message: "at least one op is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := opsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		spec, err := parseOpSpec(name, iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		d.ops[spec.Op] = spec
	}
	if len(d.ops) == 0 {
		return nil, &CompileError{
			Field:   "ops",
			Message: "at least one op is required",
			Pos:     v.Pos(),
		}
	}

	return d, nil
}

// CompileFile loads a dialect declaration from a standalone CUE file.
func CompileFile(path string) (*Dialect, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialect file: %w", err)
	}
	return CompileSource(string(src))
}

// CompileSource compiles a dialect declaration from CUE source text.
func CompileSource(src string) (*Dialect, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	return Compile(v)
}

// parseOpSpec parses one op declaration.
func parseOpSpec(dialectName, opName string, v cue.Value) (*OpSpec, error) {
	spec := &OpSpec{
		Dialect:       dialectName,
		Op:            opName,
		NumOperands:   Unconstrained,
		NumRegions:    Unconstrained,
		NumSuccessors: Unconstrained,
	}

	traitsVal := v.LookupPath(cue.ParsePath("traits"))
	if traitsVal.Exists() {
		iter, err := traitsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			t, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			spec.OpTraits = append(spec.OpTraits, ir.Trait(t))
		}
	}

	var err error
	if spec.NumOperands, err = parseArity(v, "operands"); err != nil {
		return nil, err
	}
	if spec.NumRegions, err = parseArity(v, "regions"); err != nil {
		return nil, err
	}
	if spec.NumSuccessors, err = parseArity(v, "successors"); err != nil {
		return nil, err
	}

	attrsVal := v.LookupPath(cue.ParsePath("attrs"))
	if attrsVal.Exists() {
		iter, err := attrsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			a, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			spec.RequiredAttrs = append(spec.RequiredAttrs, a)
		}
	}

	return spec, nil
}

// parseArity reads an optional non-negative arity constraint.
func parseArity(v cue.Value, field string) (int, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return Unconstrained, nil
	}
	n, err := fieldVal.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	if n < 0 {
		return 0, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("arity must be non-negative, got %d", n),
			Pos:     fieldVal.Pos(),
		}
	}
	return int(n), nil
}

// formatCUEError converts CUE SDK errors into CompileErrors with
// position info when available.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
