// Package script reads and writes rebuild documents for abstrap
// operation trees.
//
// A script is a YAML (or JSON) description of one operation tree. The
// loader rebuilds the tree by re-driving the ir.OperationBuilder
// sequence the document describes: regions, blocks, block arguments,
// nested operations, attributes, operands. Because the builder mints
// Vars sequentially, re-driving the same document always reproduces the
// same Var numbering and therefore the same fingerprint.
//
// Encode produces documents in canonical build order (blocks in region
// order, each block's arguments before its operations). A tree that was
// originally built in that order round-trips to an identical
// fingerprint; trees built with cursor repositioning may renumber.
package script
