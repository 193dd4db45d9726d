// Package store provides durable storage for finished operation trees.
//
// Trees are persisted as rebuild documents (the script package's JSON
// encoding) keyed by a UUIDv7 module id and deduplicated by their
// content-addressed fingerprint: saving a byte-identical tree twice
// yields the same row. Loading re-drives the construction sequence the
// document describes, per the rebuild contract of the construction
// layer.
//
// SQLite with WAL mode backs the store. Rows carry a logical sequence
// number, never wall-clock timestamps.
package store
