package ir

import "fmt"

// Var is an opaque handle to a produced value: either a block argument or
// an operation result. Vars carry identity only and are scoped to the
// Region that minted them. No use-after-finish checking is performed;
// liveness is the caller's responsibility.
type Var int

// Trait is a semantic tag reported by an Intrinsic. Traits are consumed
// by external verifiers and optimizers; the core never interprets them.
type Trait string

// Traits understood by the bundled verifier. The set is open: extension
// dialects may define their own.
const (
	TraitTerminator  Trait = "terminator"
	TraitCommutative Trait = "commutative"
	TraitPure        Trait = "pure"
)

// Intrinsic is the pluggable opcode handle attached to an Operation.
// The construction layer stores and forwards it opaquely.
type Intrinsic interface {
	// Name returns a stable identifying name, e.g. "base.add".
	Name() string

	// Traits returns the intrinsic's semantic trait tags.
	Traits() []Trait
}

// HasTrait reports whether intr declares the given trait.
func HasTrait(intr Intrinsic, t Trait) bool {
	for _, have := range intr.Traits() {
		if have == t {
			return true
		}
	}
	return false
}

// Attribute is pluggable metadata attached to an Operation by name.
// The only capability the core requires is structured serialization into
// the constrained Value model, so attribute maps can be round-tripped
// and hashed without the core knowing concrete shapes. Equality is not
// required; the core never compares attribute values.
type Attribute interface {
	// MarshalIR returns the attribute's payload as a Value tree.
	MarshalIR() (Value, error)
}

// BasicBlock is one straight-line code unit: an ordered, append-only
// list of argument Vars plus an ordered, append-only list of Operations.
// Operation order is program order. A block is mutated only while it is
// the active block of a builder.
type BasicBlock struct {
	args    []Var
	ops     []*Operation
	results []Var // primary result Var per operation, parallel to ops
}

// NewBasicBlock creates an empty block.
func NewBasicBlock() *BasicBlock {
	return &BasicBlock{}
}

// Arguments returns the block's argument Vars in declaration order.
// Callers must not modify the returned slice.
func (b *BasicBlock) Arguments() []Var { return b.args }

// Operations returns the block's operations in program order.
// Callers must not modify the returned slice.
func (b *BasicBlock) Operations() []*Operation { return b.ops }

// Result returns the primary result Var of the i-th operation.
func (b *BasicBlock) Result(i int) Var { return b.results[i] }

// pushArgument appends v to the block's argument list.
func (b *BasicBlock) pushArgument(v Var) {
	b.args = append(b.args, v)
}

// pushOperation appends op and records v as its primary result.
func (b *BasicBlock) pushOperation(v Var, op *Operation) {
	b.ops = append(b.ops, op)
	b.results = append(b.results, v)
}

// Region is one nested lexical/control scope inside an Operation: an
// ordered, append-only list of BasicBlocks. Block index 0 is the entry
// block. The region mints the Vars for its blocks' arguments and its
// operations' results; minting is sequential, so re-driving the same
// construction sequence reproduces the same Var numbering.
type Region struct {
	blocks  []*BasicBlock
	nextVar Var
}

// NewRegion creates an empty region.
func NewRegion() *Region {
	return &Region{}
}

// Blocks returns the region's blocks in insertion order.
// Callers must not modify the returned slice.
func (r *Region) Blocks() []*BasicBlock { return r.blocks }

// PushBlock appends b to the region.
func (r *Region) PushBlock(b *BasicBlock) {
	r.blocks = append(r.blocks, b)
}

// Block returns the block at index i.
func (r *Region) Block(i int) (*BasicBlock, error) {
	if i < 0 || i >= len(r.blocks) {
		return nil, fmt.Errorf("block index %d out of range (region has %d blocks)", i, len(r.blocks))
	}
	return r.blocks[i], nil
}

// PushArgument mints a fresh Var and appends it as a new argument of the
// block at index i.
func (r *Region) PushArgument(i int) (Var, error) {
	blk, err := r.Block(i)
	if err != nil {
		return 0, err
	}
	v := r.mint()
	blk.pushArgument(v)
	return v, nil
}

// PushOperation appends op to the block at index i and returns the fresh
// Var minted as the operation's primary result.
func (r *Region) PushOperation(i int, op *Operation) (Var, error) {
	blk, err := r.Block(i)
	if err != nil {
		return 0, err
	}
	v := r.mint()
	blk.pushOperation(v, op)
	return v, nil
}

func (r *Region) mint() Var {
	v := r.nextVar
	r.nextVar++
	return v
}

// Operation is one node of the IR tree: an Intrinsic handle, ordered
// operand Vars, a name->Attribute mapping, ordered nested Regions, and
// ordered successor BasicBlocks (explicit control-flow edges).
// Operations are immutable: they are assembled field-by-field inside
// exactly one OperationBuilder and frozen exactly once by Finish.
type Operation struct {
	intrinsic  Intrinsic
	operands   []Var
	attrs      map[string]Attribute
	regions    []*Region
	successors []*BasicBlock
}

// Intrinsic returns the operation's opcode handle.
func (op *Operation) Intrinsic() Intrinsic { return op.intrinsic }

// Operands returns the operand Vars in order.
// Callers must not modify the returned slice.
func (op *Operation) Operands() []Var { return op.operands }

// Attribute returns the attribute stored under key, if present.
// An absent key is not an error.
func (op *Operation) Attribute(key string) (Attribute, bool) {
	a, ok := op.attrs[key]
	return a, ok
}

// AttributeKeys returns the names of all attached attributes, in map
// order (unsorted). Use Value canonicalization for deterministic walks.
func (op *Operation) AttributeKeys() []string {
	keys := make([]string, 0, len(op.attrs))
	for k := range op.attrs {
		keys = append(keys, k)
	}
	return keys
}

// NumAttributes returns the number of attached attributes.
func (op *Operation) NumAttributes() int { return len(op.attrs) }

// Regions returns the nested regions in insertion order.
// Callers must not modify the returned slice.
func (op *Operation) Regions() []*Region { return op.regions }

// Successors returns the explicit control-flow successor blocks.
// Callers must not modify the returned slice.
func (op *Operation) Successors() []*BasicBlock { return op.successors }
