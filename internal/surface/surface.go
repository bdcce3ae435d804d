// Package surface selects which operator descriptors are generated for each
// target surface of the bindings, and carries the per-surface policy for
// operators that need hand-written code.
package surface

import (
	"github.com/pkg/errors"
)

// Surface is one of the generated bindings' public entry points.
type Surface int

const (
	SurfaceInvalid Surface = iota

	// SurfaceGraph is the public symbolic graph-construction API.
	SurfaceGraph

	// SurfaceTensor is the public eager-tensor API.
	SurfaceTensor

	// SurfaceContrib is the internal/contrib namespace: contrib-prefixed
	// operators generated alongside all the public ones.
	SurfaceContrib

	// SurfaceBridge is the alternate host-language variant: a flat
	// string-keyed dispatch table instead of typed callables.
	SurfaceBridge
)

var surfaceNames = map[Surface]string{
	SurfaceGraph:   "graph",
	SurfaceTensor:  "tensor",
	SurfaceContrib: "contrib",
	SurfaceBridge:  "bridge",
}

func (s Surface) String() string {
	if name, found := surfaceNames[s]; found {
		return name
	}
	return "invalid"
}

// Parse resolves a surface by its flag name.
func Parse(name string) (Surface, error) {
	for s, n := range surfaceNames {
		if n == name {
			return s, nil
		}
	}
	return SurfaceInvalid, errors.Errorf("unknown surface %q (want graph, tensor, contrib or bridge)", name)
}

// PackageName is the Go package the surface's generated file belongs to.
func (s Surface) PackageName() string {
	return s.String()
}

// TensorType is the Go type of the surface's tensor handle.
func (s Surface) TensorType() string {
	switch s {
	case SurfaceGraph, SurfaceContrib:
		return "*Node"
	case SurfaceTensor, SurfaceBridge:
		return "*Tensor"
	}
	return "invalid"
}

// ContribEnabled reports whether the surface admits contrib-prefixed
// operators.
func (s Surface) ContribEnabled() bool {
	return s == SurfaceContrib
}
