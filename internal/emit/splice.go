package emit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
)

// TargetShape enumerates the structural shapes a splice target may have.
// Anything else fails the generation run immediately: this is a build-time
// failure, not a runtime one.
type TargetShape int

const (
	// ShapePackage appends free functions to a new file in the skeleton's
	// package.
	ShapePackage TargetShape = iota

	// ShapeStruct appends methods with the struct as receiver to a new file
	// in the skeleton's package.
	ShapeStruct

	// ShapeInterface inserts method signatures into the interface body of
	// the skeleton file itself.
	ShapeInterface
)

func (s TargetShape) String() string {
	switch s {
	case ShapePackage:
		return "package"
	case ShapeStruct:
		return "struct"
	case ShapeInterface:
		return "interface"
	}
	return "invalid"
}

// SpliceTarget is the analyzed destination for generated members.
type SpliceTarget struct {
	Shape       TargetShape
	Path        string
	PackageName string

	// TypeName and Receiver are set for the struct and interface shapes.
	TypeName string
	Receiver string

	src          []byte
	insertOffset int // interface shape: offset of the interface body's closing brace
}

// AnalyzeSkeleton parses the skeleton file and locates the splice target.
// With an empty typeName the target is the package itself. A typeName that
// does not resolve to a struct or interface declaration aborts the run.
func AnalyzeSkeleton(path, typeName string) *SpliceTarget {
	src := must.M1(os.ReadFile(path))
	fileSet := token.NewFileSet()
	file, err := parser.ParseFile(fileSet, path, src, parser.ParseComments)
	if err != nil {
		exceptions.Panicf("failed to parse splice skeleton %q: %v", path, err)
	}

	target := &SpliceTarget{
		Path:        path,
		PackageName: file.Name.Name,
		src:         src,
	}
	if typeName == "" {
		target.Shape = ShapePackage
		return target
	}

	spec := findTypeSpec(file, typeName)
	if spec == nil {
		exceptions.Panicf("splice target %q not found in skeleton %q", typeName, path)
	}
	target.TypeName = typeName
	switch t := spec.Type.(type) {
	case *ast.StructType:
		target.Shape = ShapeStruct
		target.Receiver = strings.ToLower(typeName[:1])
	case *ast.InterfaceType:
		target.Shape = ShapeInterface
		target.insertOffset = fileSet.Position(t.Methods.Closing).Offset
	default:
		exceptions.Panicf("splice target %q in skeleton %q has unsupported shape %T: "+
			"must be a struct, an interface or the package itself", typeName, path, spec.Type)
	}
	return target
}

func findTypeSpec(file *ast.File, typeName string) *ast.TypeSpec {
	var found *ast.TypeSpec
	ast.Inspect(file, func(n ast.Node) bool {
		if spec, ok := n.(*ast.TypeSpec); ok && spec.Name.Name == typeName {
			found = spec
			return false
		}
		return true
	})
	return found
}

// spliceInterface returns the skeleton source with the rendered signatures
// inserted at the end of the interface body.
func (t *SpliceTarget) spliceInterface(signatures []byte) []byte {
	out := make([]byte, 0, len(t.src)+len(signatures))
	out = append(out, t.src[:t.insertOffset]...)
	out = append(out, signatures...)
	out = append(out, t.src[t.insertOffset:]...)
	return out
}
