package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/femtomc/abstrap/internal/ir"
)

// Unconstrained marks an arity field as not constrained by the dialect.
const Unconstrained = -1

// OpSpec declares one op of a dialect: its identity, traits, arity
// constraints, and required attributes. An OpSpec implements
// ir.Intrinsic, so a declared op can be handed directly to
// ir.NewOperationBuilder.
type OpSpec struct {
	// Dialect is the owning dialect's name, e.g. "base".
	Dialect string

	// Op is the bare op name, e.g. "add".
	Op string

	// OpTraits are the op's semantic trait tags.
	OpTraits []ir.Trait

	// NumOperands constrains the operand count; Unconstrained skips
	// the check.
	NumOperands int

	// NumRegions constrains the nested region count.
	NumRegions int

	// NumSuccessors constrains the successor count.
	NumSuccessors int

	// RequiredAttrs lists attribute keys that must be present.
	RequiredAttrs []string
}

// Name implements ir.Intrinsic, returning the fully qualified op name.
func (s *OpSpec) Name() string {
	return s.Dialect + "." + s.Op
}

// Traits implements ir.Intrinsic.
func (s *OpSpec) Traits() []ir.Trait {
	return s.OpTraits
}

// Dialect is a compiled catalog of op specs sharing one namespace.
type Dialect struct {
	name string
	ops  map[string]*OpSpec
}

// Name returns the dialect's namespace name.
func (d *Dialect) Name() string { return d.name }

// Op returns the spec for the bare op name, if declared.
func (d *Dialect) Op(name string) (*OpSpec, bool) {
	s, ok := d.ops[name]
	return s, ok
}

// Ops returns all op specs sorted by name.
func (d *Dialect) Ops() []*OpSpec {
	names := make([]string, 0, len(d.ops))
	for n := range d.ops {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*OpSpec, len(names))
	for i, n := range names {
		out[i] = d.ops[n]
	}
	return out
}

// Registry resolves fully qualified op names ("dialect.op") to specs.
// Registries are not safe for concurrent mutation; register everything
// up front, then share read-only.
type Registry struct {
	dialects map[string]*Dialect
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialects: make(map[string]*Dialect)}
}

// Register adds d to the registry. Re-registering a dialect name
// replaces the previous catalog.
func (r *Registry) Register(d *Dialect) {
	r.dialects[d.name] = d
}

// Dialect returns the registered dialect by name.
func (r *Registry) Dialect(name string) (*Dialect, bool) {
	d, ok := r.dialects[name]
	return d, ok
}

// Lookup resolves a fully qualified op name to its spec.
func (r *Registry) Lookup(fullName string) (*OpSpec, bool) {
	dialectName, opName, ok := strings.Cut(fullName, ".")
	if !ok {
		return nil, false
	}
	d, ok := r.dialects[dialectName]
	if !ok {
		return nil, false
	}
	return d.Op(opName)
}

// Resolve implements intrinsic resolution for collaborators rebuilding
// trees from documents: it returns the registered spec as an
// ir.Intrinsic, or an error naming the unresolved op.
func (r *Registry) Resolve(fullName string) (ir.Intrinsic, error) {
	spec, ok := r.Lookup(fullName)
	if !ok {
		return nil, fmt.Errorf("unknown intrinsic %q: no registered dialect declares it", fullName)
	}
	return spec, nil
}
