// Package verify checks finished operation trees against structural
// rules and registered dialect constraints.
//
// Verification is a collaborator of the construction layer, not part of
// it: OperationBuilder.Finish performs no semantic validation, and this
// package consumes the resulting tree read-only. All diagnostics are
// collected; verification never fails fast.
package verify

import (
	"fmt"

	"github.com/femtomc/abstrap/internal/dialect"
	"github.com/femtomc/abstrap/internal/ir"
)

// Diagnostic codes (V100-V199).
const (
	// Structural rules (V100-V109)
	CodeEmptyBlock         = "V100" // block has no operations
	CodeMissingTerminator  = "V101" // block's last op is not a terminator
	CodeMidBlockTerminator = "V102" // terminator before the end of a block

	// Dialect constraint rules (V110-V119)
	CodeUnknownOp        = "V110" // intrinsic not registered in any dialect
	CodeOperandArity     = "V111" // operand count violates the op spec
	CodeRegionArity      = "V112" // region count violates the op spec
	CodeSuccessorArity   = "V113" // successor count violates the op spec
	CodeMissingAttribute = "V114" // required attribute absent
)

// Diagnostic reports one rule violation at a path into the tree.
type Diagnostic struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Path, d.Message)
}

// Options controls which rule sets run.
type Options struct {
	// Registry supplies dialect op specs for constraint checks. When
	// nil, only structural rules run.
	Registry *dialect.Registry

	// RequireRegistered reports unregistered intrinsics as V110 instead
	// of silently skipping their constraint checks.
	RequireRegistered bool

	// CheckTerminators enables the block-termination rules. Trees that
	// model pure data flow (no control transfer) can switch them off.
	CheckTerminators bool
}

// DefaultOptions verifies against the default registry with terminator
// checking on.
func DefaultOptions() Options {
	return Options{
		Registry:         dialect.DefaultRegistry(),
		CheckTerminators: true,
	}
}

// Verify walks the tree rooted at op and returns all diagnostics found.
// A nil slice means the tree passed.
func Verify(op *ir.Operation, opts Options) []Diagnostic {
	var diags []Diagnostic
	verifyOp(op, opts, "operation", &diags)
	return diags
}

func verifyOp(op *ir.Operation, opts Options, path string, diags *[]Diagnostic) {
	name := op.Intrinsic().Name()

	if opts.Registry != nil {
		spec, ok := opts.Registry.Lookup(name)
		switch {
		case ok:
			checkSpec(op, spec, path, diags)
		case opts.RequireRegistered:
			*diags = append(*diags, Diagnostic{
				Code:    CodeUnknownOp,
				Path:    path,
				Message: fmt.Sprintf("intrinsic %q is not registered in any dialect", name),
			})
		}
	}

	for i, r := range op.Regions() {
		for j, blk := range r.Blocks() {
			blockPath := fmt.Sprintf("%s.regions[%d].blocks[%d]", path, i, j)
			if opts.CheckTerminators {
				checkTermination(blk, blockPath, diags)
			}
			for k, child := range blk.Operations() {
				verifyOp(child, opts, fmt.Sprintf("%s.operations[%d]", blockPath, k), diags)
			}
		}
	}

	for i, blk := range op.Successors() {
		blockPath := fmt.Sprintf("%s.successors[%d]", path, i)
		for k, child := range blk.Operations() {
			verifyOp(child, opts, fmt.Sprintf("%s.operations[%d]", blockPath, k), diags)
		}
	}
}

// checkTermination enforces that a block ends with exactly one
// terminator, at its end.
func checkTermination(blk *ir.BasicBlock, path string, diags *[]Diagnostic) {
	ops := blk.Operations()
	if len(ops) == 0 {
		*diags = append(*diags, Diagnostic{
			Code:    CodeEmptyBlock,
			Path:    path,
			Message: "block has no operations and therefore no terminator",
		})
		return
	}

	last := ops[len(ops)-1]
	if !ir.HasTrait(last.Intrinsic(), ir.TraitTerminator) {
		*diags = append(*diags, Diagnostic{
			Code:    CodeMissingTerminator,
			Path:    path,
			Message: fmt.Sprintf("last operation %q is not a terminator", last.Intrinsic().Name()),
		})
	}

	for k, op := range ops[:len(ops)-1] {
		if ir.HasTrait(op.Intrinsic(), ir.TraitTerminator) {
			*diags = append(*diags, Diagnostic{
				Code:    CodeMidBlockTerminator,
				Path:    fmt.Sprintf("%s.operations[%d]", path, k),
				Message: fmt.Sprintf("terminator %q before the end of the block", op.Intrinsic().Name()),
			})
		}
	}
}

// checkSpec enforces a registered op spec's arity and attribute
// constraints.
func checkSpec(op *ir.Operation, spec *dialect.OpSpec, path string, diags *[]Diagnostic) {
	if spec.NumOperands != dialect.Unconstrained && len(op.Operands()) != spec.NumOperands {
		*diags = append(*diags, Diagnostic{
			Code:    CodeOperandArity,
			Path:    path,
			Message: fmt.Sprintf("%s expects %d operands, got %d", spec.Name(), spec.NumOperands, len(op.Operands())),
		})
	}
	if spec.NumRegions != dialect.Unconstrained && len(op.Regions()) != spec.NumRegions {
		*diags = append(*diags, Diagnostic{
			Code:    CodeRegionArity,
			Path:    path,
			Message: fmt.Sprintf("%s expects %d regions, got %d", spec.Name(), spec.NumRegions, len(op.Regions())),
		})
	}
	if spec.NumSuccessors != dialect.Unconstrained && len(op.Successors()) != spec.NumSuccessors {
		*diags = append(*diags, Diagnostic{
			Code:    CodeSuccessorArity,
			Path:    path,
			Message: fmt.Sprintf("%s expects %d successors, got %d", spec.Name(), spec.NumSuccessors, len(op.Successors())),
		})
	}
	for _, key := range spec.RequiredAttrs {
		if _, ok := op.Attribute(key); !ok {
			*diags = append(*diags, Diagnostic{
				Code:    CodeMissingAttribute,
				Path:    path,
				Message: fmt.Sprintf("%s requires attribute %q", spec.Name(), key),
			})
		}
	}
}
