// Package opregistry exposes the native framework's operator registry as an
// explicit enumerable capability: list all registered operator names, and
// resolve one name to its argument/type/description metadata.
//
// The native registry itself lives inside the framework's C library. The
// generator never links against it: generation runs consume a Snapshot, a JSON
// dump of the registry produced by the framework-side enumeration tool.
package opregistry

import (
	"fmt"
	"slices"
	"strings"
)

// ArgInfo is the metadata of a single operator argument, as reported by the
// native registry. TypeInfo is the raw declared type string, e.g.
// "NDArray-or-Symbol", "float, optional, default=1" or "Shape(tuple), required".
type ArgInfo struct {
	Name        string `json:"name"`
	TypeInfo    string `json:"type_info"`
	Description string `json:"description"`
}

// OperatorInfo is the metadata of one registered operator.
type OperatorInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Args        []ArgInfo `json:"args"`

	// KeyVarNumArgs names the argument that carries the count of variadic
	// inputs, or is empty for fixed-arity operators.
	KeyVarNumArgs string `json:"key_var_num_args,omitempty"`

	// ReturnType as declared by the registry, e.g. "NDArray-or-Symbol" or
	// "NDArray-or-Symbol[]".
	ReturnType string `json:"return_type"`
}

// Registry is the enumerable operator-registry capability.
type Registry interface {
	// OperatorNames returns all registered operator names, sorted.
	OperatorNames() []string

	// Lookup resolves one operator name to its metadata.
	Lookup(name string) (*OperatorInfo, error)
}

// InternalMarker prefixes operator names that are not part of the public
// surface of the framework.
const InternalMarker = "_"

// ContribPrefix marks internal operators that belong to the contrib namespace.
const ContribPrefix = "_contrib_"

// IsInternal reports whether the operator name carries the internal marker.
func IsInternal(name string) bool {
	return strings.HasPrefix(name, InternalMarker)
}

// IsContrib reports whether the operator belongs to the contrib namespace.
func IsContrib(name string) bool {
	return strings.HasPrefix(name, ContribPrefix)
}

// memRegistry is an in-memory Registry, used by tests and by the snapshot
// loader once decoded.
type memRegistry struct {
	names []string
	ops   map[string]*OperatorInfo
}

// NewInMemory builds a Registry from the given operator entries.
// Duplicate operator names are an error.
func NewInMemory(ops ...OperatorInfo) (Registry, error) {
	r := &memRegistry{ops: make(map[string]*OperatorInfo, len(ops))}
	for _, op := range ops {
		op := op
		if _, found := r.ops[op.Name]; found {
			return nil, fmt.Errorf("operator %q registered twice", op.Name)
		}
		r.ops[op.Name] = &op
		r.names = append(r.names, op.Name)
	}
	slices.Sort(r.names)
	return r, nil
}

func (r *memRegistry) OperatorNames() []string {
	return slices.Clone(r.names)
}

func (r *memRegistry) Lookup(name string) (*OperatorInfo, error) {
	op, found := r.ops[name]
	if !found {
		return nil, fmt.Errorf("operator %q is not registered", name)
	}
	return op, nil
}
