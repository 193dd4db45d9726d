// Package dialect provides declarative intrinsic catalogs for the
// abstrap IR.
//
// A dialect is declared in CUE: each op names its traits, arity
// constraints, and required attributes. Compiling a dialect yields
// OpSpecs that implement ir.Intrinsic, so declared ops plug straight
// into the construction layer, and a Registry that the verifier and the
// script loader resolve intrinsic names against.
//
// The bundled "base" dialect (module, func, constant, arithmetic,
// call, branches, return) is compiled from an embedded CUE file and
// available through DefaultRegistry. Extension code can register its
// own dialects alongside it or implement ir.Intrinsic directly and
// bypass this package entirely.
package dialect
