// Package descriptor builds the generator's in-memory representation of each
// registered operator: its name, ordered arguments and return shape.
//
// Descriptors are constructed fresh per generation run from a live registry
// query and discarded at the end of the run. They are never persisted.
package descriptor

import (
	"slices"
	"strings"

	"github.com/mxbind/mxbind/internal/normalize"
	"github.com/mxbind/mxbind/internal/opregistry"
)

// Argument is one operator argument, normalized for a target surface.
//
// Name is the surface identifier; NativeName is the identifier the registry
// declared. They differ when the native name collides with a reserved Go
// identifier, or after random-sampler unification. Emitted call sites always
// pass the attribute under NativeName, so the rename is reversible at
// call-construction time.
type Argument struct {
	Name        string
	NativeName  string
	Type        normalize.Type
	Description string
}

// Func describes one operator callable to be generated.
type Func struct {
	// Name is the operator identifier from the registry. After random-sampler
	// unification it holds the canonical name of the distribution.
	Name string

	// NativeOp is the operator the emitted call site invokes. Equal to Name
	// except for unified descriptors, where it names the chosen native
	// operator.
	NativeOp string

	// GoName is the exported Go identifier of the generated callable.
	GoName string

	Description string
	Args        []*Argument

	// Returns is the parsed declared return type: a tensor handle or an
	// array of them.
	Returns normalize.Type

	// KeyVarNumArgs names the attribute carrying the variadic input count,
	// or is empty for fixed-arity operators.
	KeyVarNumArgs string
}

// Variadic reports whether the operator takes a variable number of inputs.
func (f *Func) Variadic() bool {
	return f.KeyVarNumArgs != ""
}

// RequiredArgs returns the arguments without a default, in declaration order.
func (f *Func) RequiredArgs() []*Argument {
	return filterArgs(f.Args, false)
}

// OptionalArgs returns the arguments with an absence marker or
// empty-container default, in declaration order.
func (f *Func) OptionalArgs() []*Argument {
	return filterArgs(f.Args, true)
}

func filterArgs(args []*Argument, optional bool) []*Argument {
	var out []*Argument
	for _, arg := range args {
		if arg.Type.Optional == optional {
			out = append(out, arg)
		}
	}
	return out
}

func (f *Func) clone() *Func {
	c := *f
	c.Args = make([]*Argument, len(f.Args))
	for i, arg := range f.Args {
		argCopy := *arg
		c.Args[i] = &argCopy
	}
	return &c
}

// SortByName orders descriptors by their (canonical) operator name, so that
// regenerating from the same registry snapshot yields byte-identical output.
func SortByName(funcs []*Func) {
	slices.SortFunc(funcs, func(a, b *Func) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// internal re-exports, so surface filtering can be expressed on descriptors.

// IsInternal reports whether the descriptor's operator carries the internal
// marker.
func (f *Func) IsInternal() bool { return opregistry.IsInternal(f.Name) }

// IsContrib reports whether the descriptor's operator belongs to the contrib
// namespace.
func (f *Func) IsContrib() bool { return opregistry.IsContrib(f.Name) }
