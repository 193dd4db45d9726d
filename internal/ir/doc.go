// Package ir provides the core data model and construction layer for the
// abstrap intermediate representation.
//
// The IR is op-based and arbitrarily nested: an Operation owns Regions,
// a Region owns BasicBlocks, and a BasicBlock owns Operations. Two open
// interfaces, Intrinsic and Attribute, let extension code attach opcode
// semantics and metadata without this package knowing their concrete
// shapes. All other internal packages import ir; ir imports nothing
// internal. This keeps the IR the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Operations are immutable once OperationBuilder.Finish returns them
//   - Vars are identity-only handles; no liveness checking is performed
//   - Attribute payloads serialize into the constrained Value model
//     (no floats, no null) so trees can be canonically hashed
//   - Construction is single-threaded; a builder has exactly one writer
package ir
