// Package normalize maps the native registry's argument type strings and
// identifiers to their idiomatic Go equivalents.
//
// The native side declares argument types as free-form strings, e.g.
//
//	"NDArray-or-Symbol"
//	"int, optional, default=-1"
//	"{'relu','sigmoid','tanh'}, required"
//	"Shape(tuple), optional, default=[]"
//
// ParseType turns those into a Type value. A type string with no known mapping
// is a build-time failure: the generation run aborts.
package normalize

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind enumerates the type families the generator knows how to bind.
type Kind int

const (
	KindInvalid Kind = iota
	KindTensor       // a tensor or symbolic graph-node handle
	KindTensorArray  // an array of tensor handles
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBool
	KindString
	KindShape // a shape tuple, bound as []int
	KindIntArray
	KindFloatArray
	KindEnum // a closed set of string values
)

var kindNames = map[Kind]string{
	KindInvalid:     "invalid",
	KindTensor:      "tensor",
	KindTensorArray: "tensor[]",
	KindInt:         "int",
	KindLong:        "long",
	KindFloat:       "float",
	KindDouble:      "double",
	KindBool:        "boolean",
	KindString:      "string",
	KindShape:       "shape",
	KindIntArray:    "int[]",
	KindFloatArray:  "float[]",
	KindEnum:        "enum",
}

func (k Kind) String() string {
	if name, found := kindNames[k]; found {
		return name
	}
	return "invalid"
}

// IsArray reports whether the kind is a container type. Optional arguments of
// array kinds get an empty-container default instead of an absence marker.
func (k Kind) IsArray() bool {
	switch k {
	case KindTensorArray, KindShape, KindIntArray, KindFloatArray:
		return true
	}
	return false
}

// Type is the normalized form of one native argument type string.
type Type struct {
	Kind     Kind
	Optional bool

	// Default holds the native default literal verbatim ("-1", "'uint8'",
	// "[]"), or is empty when the registry declared no default.
	Default string

	// EnumValues holds the allowed values for KindEnum.
	EnumValues []string
}

// baseKinds maps the native base type spelling to its kind. "NDArray",
// "Symbol" and "NDArray-or-Symbol" are all graph/tensor handles: which one a
// generated binding produces is decided by the target surface, not by the
// registry.
var baseKinds = map[string]Kind{
	"NDArray":             KindTensor,
	"Symbol":              KindTensor,
	"NDArray-or-Symbol":   KindTensor,
	"NDArray[]":           KindTensorArray,
	"Symbol[]":            KindTensorArray,
	"NDArray-or-Symbol[]": KindTensorArray,
	"int":                 KindInt,
	"int (non-negative)":  KindInt,
	"long":                KindLong,
	"long (non-negative)": KindLong,
	"float":               KindFloat,
	"double":              KindDouble,
	"boolean":             KindBool,
	"string":              KindString,
	"Shape(tuple)":        KindShape,
	"int[]":               KindIntArray,
	"float[]":             KindFloatArray,
}

// ParseType normalizes one native type string.
func ParseType(typeInfo string) (Type, error) {
	base, clauses := splitTypeClauses(typeInfo)

	var t Type
	if strings.HasPrefix(base, "{") {
		values, err := parseEnumValues(base)
		if err != nil {
			return Type{}, errors.Wrapf(err, "bad enum type %q", typeInfo)
		}
		t.Kind = KindEnum
		t.EnumValues = values
	} else {
		// "X or None" declares the same base type with a nullable native
		// representation; the binding treats it as plain X.
		base = strings.TrimSuffix(base, " or None")
		kind, found := baseKinds[base]
		if !found {
			return Type{}, errors.Errorf("no known mapping for native type %q", typeInfo)
		}
		t.Kind = kind
	}

	for _, clause := range clauses {
		switch {
		case clause == "required":
			t.Optional = false
		case clause == "optional":
			t.Optional = true
		case strings.HasPrefix(clause, "default="):
			t.Optional = true
			t.Default = strings.TrimPrefix(clause, "default=")
		default:
			return Type{}, errors.Errorf("unrecognized clause %q in native type %q", clause, typeInfo)
		}
	}
	if t.Default == "None" || t.Default == "'None'" {
		t.Default = ""
	}
	return t, nil
}

// splitTypeClauses splits "base, clause, clause" at top-level commas only:
// commas inside {...}, (...) or [...] belong to the base or default literal.
func splitTypeClauses(typeInfo string) (base string, clauses []string) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range typeInfo {
		switch r {
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(typeInfo[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(typeInfo[start:]))

	base = parts[0]
	for _, part := range parts[1:] {
		if part != "" {
			clauses = append(clauses, part)
		}
	}

	// A default literal may itself contain top-level-comma-free text like
	// "default=(1, 1)"; those commas are protected by the depth counter above.
	return base, clauses
}

func parseEnumValues(base string) ([]string, error) {
	if !strings.HasSuffix(base, "}") {
		return nil, errors.Errorf("unterminated enum set %q", base)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(base, "{"), "}")
	var values []string
	for _, raw := range strings.Split(inner, ",") {
		value := strings.TrimSpace(raw)
		value = strings.Trim(value, "'")
		if value == "None" {
			// "None" as an enum member means the attribute may be left unset,
			// which the optionality flag already expresses.
			continue
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, errors.Errorf("empty enum set %q", base)
	}
	return values, nil
}

// GoType returns the Go type bound for this native type on a surface whose
// tensor handle type is tensorType (e.g. "*Node" for the graph surface,
// "*Tensor" for the eager surface).
func (t Type) GoType(tensorType string) string {
	switch t.Kind {
	case KindTensor:
		return tensorType
	case KindTensorArray:
		return "[]" + tensorType
	case KindInt:
		return "int"
	case KindLong:
		return "int64"
	case KindFloat:
		return "float32"
	case KindDouble:
		return "float64"
	case KindBool:
		return "bool"
	case KindString, KindEnum:
		return "string"
	case KindShape, KindIntArray:
		return "[]int"
	case KindFloatArray:
		return "[]float32"
	}
	return "invalid"
}

// AttrFieldType returns the Go type of the generated attrs-struct field for an
// optional argument: array kinds keep their container type (the zero value, an
// empty container, is the default), everything else gets a pointer so that nil
// marks absence. Tensor handles are already nillable and keep their type.
func (t Type) AttrFieldType(tensorType string) string {
	goType := t.GoType(tensorType)
	if t.Kind.IsArray() || t.Kind == KindTensor {
		return goType
	}
	return "*" + goType
}
