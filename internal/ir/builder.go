package ir

// cursor locates the builder's insertion point. The region half counts
// regions pushed so far; the block half counts blocks pushed so far. The
// active region is index region-1, the active block within it is index
// block-1. The cursor is per-builder value state, never shared.
type cursor struct {
	region int
	block  int
}

// OperationBuilder is the stateful construction context for a single
// Operation. A builder accumulates operands, attributes, regions and
// successors, tracks its insertion point with a cursor, and is consumed
// by Finish. Builders are single-writer: sharing one across goroutines
// without external locking is unsupported.
//
// Nested construction is ordinary recursion: build the child operation
// with its own builder, Finish it, and push the result into the parent's
// active block.
type OperationBuilder struct {
	intrinsic  Intrinsic
	operands   []Var
	attrs      map[string]Attribute
	regions    []*Region
	successors []*BasicBlock
	latest     []Var
	cur        cursor
	spent      bool
}

// NewOperationBuilder creates a fresh builder bound to intr, with empty
// operand/attribute/region/successor state and cursor (0,0). It never
// fails.
func NewOperationBuilder(intr Intrinsic) *OperationBuilder {
	return &OperationBuilder{
		intrinsic: intr,
		attrs:     make(map[string]Attribute),
	}
}

// Intrinsic returns the intrinsic the builder was created with.
func (b *OperationBuilder) Intrinsic() Intrinsic { return b.intrinsic }

// Latest returns the primary result Vars of the most recently pushed
// operation, or nil if no operation has been pushed yet.
func (b *OperationBuilder) Latest() []Var {
	out := make([]Var, len(b.latest))
	copy(out, b.latest)
	return out
}

// Cursor returns the builder's (region, block) counts.
func (b *OperationBuilder) Cursor() (region, block int) {
	return b.cur.region, b.cur.block
}

// SetCursor repositions the insertion point. Counts address regions and
// blocks one past the active index, matching the values Cursor reports.
func (b *OperationBuilder) SetCursor(region, block int) {
	b.cur = cursor{region: region, block: block}
}

// PushOperand appends v to the operand list. No liveness check is
// performed; v is trusted to be valid in the caller's session.
func (b *OperationBuilder) PushOperand(v Var) {
	b.operands = append(b.operands, v)
}

// SetOperands replaces the operand list wholesale.
func (b *OperationBuilder) SetOperands(vs []Var) {
	b.operands = vs
}

// Operands returns the accumulated operand list.
// Callers must not modify the returned slice.
func (b *OperationBuilder) Operands() []Var { return b.operands }

// PushRegion appends r and advances the region half of the cursor. The
// block half deliberately carries over from its previous value: the new
// region inherits the prior block-index context until the first
// PushBlock, and active-block lookups in between report NO_ACTIVE_BLOCK
// when the carried index does not address a block. Use SetCursor to
// reposition explicitly.
func (b *OperationBuilder) PushRegion(r *Region) {
	b.regions = append(b.regions, r)
	b.cur.region++
}

// Regions returns the regions collected so far.
// Callers must not modify the returned slice.
func (b *OperationBuilder) Regions() []*Region { return b.regions }

// activeRegion returns the region addressed by the cursor. SetCursor
// can point the region half anywhere, so the index is validated against
// the regions pushed so far.
func (b *OperationBuilder) activeRegion() (*Region, *BuilderError) {
	i := b.cur.region - 1
	if i < 0 || i >= len(b.regions) {
		return nil, newNoActiveRegion(b.intrinsic.Name())
	}
	return b.regions[i], nil
}

// activeBlockIndex returns the block index addressed by the cursor,
// validated against the active region.
func (b *OperationBuilder) activeBlockIndex(r *Region) (int, *BuilderError) {
	i := b.cur.block - 1
	if i < 0 || i >= len(r.Blocks()) {
		return 0, newNoActiveBlock(b.intrinsic.Name())
	}
	return i, nil
}

// PushBlock appends blk to the active region and advances the block half
// of the cursor. Fails with NO_ACTIVE_REGION if no region has been
// pushed; the builder is left unchanged on failure.
func (b *OperationBuilder) PushBlock(blk *BasicBlock) error {
	r, berr := b.activeRegion()
	if berr != nil {
		return berr
	}
	r.PushBlock(blk)
	b.cur.block++
	return nil
}

// ActiveBlock returns a mutable view of the block the cursor addresses.
// Fails with NO_ACTIVE_REGION or NO_ACTIVE_BLOCK when the cursor does
// not address a block.
func (b *OperationBuilder) ActiveBlock() (*BasicBlock, error) {
	r, berr := b.activeRegion()
	if berr != nil {
		return nil, berr
	}
	i, berr := b.activeBlockIndex(r)
	if berr != nil {
		return nil, berr
	}
	blk, err := r.Block(i)
	if err != nil {
		return nil, newNoActiveBlock(b.intrinsic.Name())
	}
	return blk, nil
}

// PushBlockArgument asks the active region to mint a fresh Var as a new
// argument of the active block and returns it. If the active block is
// the region's entry block, the Var is also appended to the builder's
// operand list, linking the region's entry parameters to the enclosing
// operation's operands. Fails with the same errors as ActiveBlock; the
// builder is left unchanged on failure.
func (b *OperationBuilder) PushBlockArgument() (Var, error) {
	r, berr := b.activeRegion()
	if berr != nil {
		return 0, berr
	}
	i, berr := b.activeBlockIndex(r)
	if berr != nil {
		return 0, berr
	}
	v, err := r.PushArgument(i)
	if err != nil {
		return 0, newNoActiveBlock(b.intrinsic.Name())
	}
	if i == 0 {
		b.PushOperand(v)
	}
	return v, nil
}

// InsertAttribute stores attr under key, overwriting any previous value.
func (b *OperationBuilder) InsertAttribute(key string, attr Attribute) {
	b.attrs[key] = attr
}

// Attribute returns the attribute stored under key, if present.
// An absent key is not an error.
func (b *OperationBuilder) Attribute(key string) (Attribute, bool) {
	a, ok := b.attrs[key]
	return a, ok
}

// PushOperation inserts a finished child operation into the active
// block. The block's region mints the child's primary result Var, which
// is recorded as the builder's latest result and returned. Fails with
// the same errors as ActiveBlock; the builder is left unchanged on
// failure.
func (b *OperationBuilder) PushOperation(op *Operation) (Var, error) {
	r, berr := b.activeRegion()
	if berr != nil {
		return 0, berr
	}
	i, berr := b.activeBlockIndex(r)
	if berr != nil {
		return 0, berr
	}
	v, err := r.PushOperation(i, op)
	if err != nil {
		return 0, newNoActiveBlock(b.intrinsic.Name())
	}
	b.latest = []Var{v}
	return v, nil
}

// PushSuccessor appends blk as an explicit control-flow successor.
func (b *OperationBuilder) PushSuccessor(blk *BasicBlock) {
	b.successors = append(b.successors, blk)
}

// Finish consumes the builder and freezes its accumulated state into an
// immutable Operation. It always succeeds and performs no semantic
// validation; verification is a collaborator's job. A builder may be
// finished at most once: subsequent calls return nil, and a spent
// builder must not be mutated further.
func (b *OperationBuilder) Finish() *Operation {
	if b.spent {
		return nil
	}
	b.spent = true
	op := &Operation{
		intrinsic:  b.intrinsic,
		operands:   b.operands,
		attrs:      b.attrs,
		regions:    b.regions,
		successors: b.successors,
	}
	b.operands = nil
	b.attrs = nil
	b.regions = nil
	b.successors = nil
	b.latest = nil
	return op
}
