package emit

import (
	"go/format"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxbind/mxbind/internal/descriptor"
	"github.com/mxbind/mxbind/internal/normalize"
	"github.com/mxbind/mxbind/internal/surface"
)

func emitTestFuncs() []*descriptor.Func {
	return []*descriptor.Func{
		{
			Name: "softmax", NativeOp: "softmax", GoName: "Softmax",
			Description: "Applies the softmax function along the given axis.",
			Args: []*descriptor.Argument{
				{Name: "data", NativeName: "data", Type: normalize.Type{Kind: normalize.KindTensor}},
				{Name: "axis", NativeName: "axis", Type: normalize.Type{Kind: normalize.KindInt, Optional: true, Default: "-1"}},
				{Name: "type", NativeName: "type", Type: normalize.Type{Kind: normalize.KindEnum, Optional: true, EnumValues: []string{"float16", "float32"}}},
			},
			Returns: normalize.Type{Kind: normalize.KindTensor},
		},
		{
			Name: "add_n", NativeOp: "add_n", GoName: "AddN",
			Args: []*descriptor.Argument{
				{Name: "args", NativeName: "args", Type: normalize.Type{Kind: normalize.KindTensorArray}},
			},
			Returns:       normalize.Type{Kind: normalize.KindTensor},
			KeyVarNumArgs: "num_args",
		},
		{
			Name: "Reshape", NativeOp: "Reshape", GoName: "Reshape",
			Args: []*descriptor.Argument{
				{Name: "data", NativeName: "data", Type: normalize.Type{Kind: normalize.KindTensor}},
				{Name: "shape", NativeName: "shape", Type: normalize.Type{Kind: normalize.KindShape, Optional: true, Default: "[]"}},
			},
			Returns: normalize.Type{Kind: normalize.KindTensor},
		},
		{
			// Unified from the "_sample_" family: canonical loc/scale argument
			// names over native mu/sigma.
			Name: "_random_normal", NativeOp: "_sample_normal", GoName: "RandomNormal",
			Args: []*descriptor.Argument{
				{Name: "loc", NativeName: "mu", Type: normalize.Type{Kind: normalize.KindTensor}},
				{Name: "scale", NativeName: "sigma", Type: normalize.Type{Kind: normalize.KindTensor}},
			},
			Returns: normalize.Type{Kind: normalize.KindTensor},
		},
	}
}

func generate(t *testing.T, opts Options) (src, name string) {
	t.Helper()
	out, name, err := Generate(emitTestFuncs(), opts)
	require.NoError(t, err)
	// format.Source on already formatted output is the identity.
	formatted, err := format.Source(out)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(out))
	return string(out), name
}

func TestGenerateGraphSurface(t *testing.T) {
	src, name := generate(t, Options{Surface: surface.SurfaceGraph, Framework: "mxnet 1.9.1"})
	assert.Equal(t, "gen_graph_ops.go", name)
	assert.Contains(t, src, "package graph")
	assert.Contains(t, src, "func Softmax(data *Node, attrs *SoftmaxAttrs) *Node")

	// The reserved-identifier rename shows up in the attrs struct only; the
	// call site passes the attribute under the native name.
	assert.Contains(t, src, "DataType *string")
	assert.Contains(t, src, `call.OptionalAttr("type", attrs.DataType)`)
	assert.NotContains(t, src, `"dataType"`)

	// Optional array arguments keep their container type and go through the
	// empty-container default path.
	assert.Contains(t, src, "Shape []int")
	assert.Contains(t, src, `call.ArrayAttr("shape", attrs.Shape)`)

	// Variadic operators fill in their input-count attribute themselves.
	assert.Contains(t, src, "func AddN(args []*Node)")
	assert.Contains(t, src, `call.Inputs("args", args...)`)
	assert.Contains(t, src, `call.Attr("num_args", call.NumInputs())`)

	// Unified random sampler: canonical parameter names, native attribute
	// names restored at call construction.
	assert.Contains(t, src, "func RandomNormal(loc *Node, scale *Node)")
	assert.Contains(t, src, `newOpCall("_sample_normal")`)
	assert.Contains(t, src, `call.Input("mu", loc)`)
	assert.Contains(t, src, `call.Input("sigma", scale)`)
}

func TestGenerateTensorSurface(t *testing.T) {
	src, name := generate(t, Options{Surface: surface.SurfaceTensor})
	assert.Equal(t, "gen_tensor_ops.go", name)
	assert.Contains(t, src, "package tensor")
	assert.Contains(t, src, "func Softmax(data *Tensor, attrs *SoftmaxAttrs) *Tensor")
}

func TestGenerateStructSplice(t *testing.T) {
	target := AnalyzeSkeleton(filepath.Join("testdata", "graph_skeleton.go"), "Builder")
	require.Equal(t, ShapeStruct, target.Shape)
	assert.Equal(t, "graph", target.PackageName)
	assert.Equal(t, "b", target.Receiver)

	src, _ := generate(t, Options{Surface: surface.SurfaceGraph, Target: target})
	assert.Contains(t, src, "func (b *Builder) Softmax(data *Node, attrs *SoftmaxAttrs) *Node")
	assert.Contains(t, src, `call := b.newOpCall("softmax")`)
}

func TestGenerateInterfaceSplice(t *testing.T) {
	target := AnalyzeSkeleton(filepath.Join("testdata", "builder_iface.go"), "StandardOps")
	require.Equal(t, ShapeInterface, target.Shape)

	src, name := generate(t, Options{Surface: surface.SurfaceGraph, Target: target})
	assert.Equal(t, "gen_builder_iface.go", name)
	assert.Contains(t, src, "package backends")

	// The spliced signatures land inside the interface body, after the
	// hand-written members.
	iface := src[strings.Index(src, "StandardOps interface"):]
	assert.Contains(t, iface, "Name() string")
	assert.Contains(t, iface, "Softmax(data *Node, attrs *SoftmaxAttrs) *Node")
	assert.Contains(t, iface, "AddN(args []*Node) *Node")
}

func TestGenerateBridgeSurface(t *testing.T) {
	src, name := generate(t, Options{Surface: surface.SurfaceBridge})
	assert.Equal(t, "gen_optable.go", name)
	assert.Contains(t, src, "package bridge")
	assert.Contains(t, src, `"Softmax": {`)
	assert.Contains(t, src, `NativeOp: "softmax"`)

	// Round-trip: the table carries native attribute names, not the renamed
	// surface identifiers.
	assert.Contains(t, src, `"mu"`)
	assert.Contains(t, src, `"sigma"`)
	assert.Contains(t, src, `"type"`)
	assert.NotContains(t, src, `"dataType"`)
	assert.Contains(t, src, `VarNumArgsAttr: "num_args"`)
}

func TestAnalyzeSkeletonRejectsOtherShapes(t *testing.T) {
	skeleton := filepath.Join("testdata", "graph_skeleton.go")
	assert.Panics(t, func() { AnalyzeSkeleton(skeleton, "Registry") })
	assert.Panics(t, func() { AnalyzeSkeleton(skeleton, "NoSuchType") })
}

func TestAnalyzeSkeletonPackageShape(t *testing.T) {
	target := AnalyzeSkeleton(filepath.Join("testdata", "graph_skeleton.go"), "")
	require.Equal(t, ShapePackage, target.Shape)
	assert.Equal(t, "graph", target.PackageName)

	src, _ := generate(t, Options{Surface: surface.SurfaceGraph, Target: target})
	assert.Contains(t, src, "package graph")
	assert.Contains(t, src, "func Softmax(")
}
