// Package cli implements the abstrap command line interface.
//
// Commands operate on rebuild scripts (YAML or JSON documents that
// describe how to reconstruct an operation tree through the builder)
// and on module databases that persist trees by content fingerprint.
// Every command supports text and JSON output via --format, and
// additional dialects can be registered with repeated --dialect flags.
//
// Exit codes: 0 on success, 1 when verification reports diagnostics,
// 2 on command errors such as unreadable scripts or missing modules.
package cli
