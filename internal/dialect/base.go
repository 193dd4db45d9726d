package dialect

import (
	_ "embed"
	"sync"
)

//go:embed base.cue
var baseCUE string

var (
	baseOnce    sync.Once
	baseDialect *Dialect
)

// Base returns the bundled base dialect.
func Base() *Dialect {
	baseOnce.Do(compileBase)
	return baseDialect
}

// DefaultRegistry returns a registry with the base dialect registered.
// Each call returns a fresh registry so callers can add their own
// dialects without affecting others.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Base())
	return r
}

func compileBase() {
	d, err := CompileSource(baseCUE)
	if err != nil {
		// The embedded declaration is part of the build; failing to
		// compile it is a packaging bug, not a runtime condition.
		panic("dialect: embedded base.cue does not compile: " + err.Error())
	}
	baseDialect = d
}
