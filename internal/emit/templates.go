package emit

import (
	"strings"
	"text/template"

	"github.com/mxbind/mxbind/internal/descriptor"
	"github.com/mxbind/mxbind/internal/normalize"
	"github.com/mxbind/mxbind/internal/surface"
)

// fileData is the root template context for one generated surface file.
type fileData struct {
	Framework string
	Package   string
	Funcs     []*funcData
}

// funcData is the template view of one descriptor.
type funcData struct {
	GoName     string
	NativeOp   string
	Doc        []string
	Recv       string // method receiver, e.g. "b *Builder"; empty for free functions
	CallPrefix string // "b." when Recv is set
	ReturnType string // "*Node", "[]*Tensor", ...

	Params []*paramData // required arguments, declaration order
	Attrs  []*attrData  // optional arguments, declaration order

	ReturnsSlice  bool
	KeyVarNumArgs string
}

type paramData struct {
	GoName     string
	GoType     string
	NativeName string

	IsTensor      bool
	IsTensorArray bool
}

type attrData struct {
	FieldName  string
	FieldType  string
	NativeName string
	Doc        string

	IsArray  bool
	IsTensor bool
}

// buildFuncData maps a descriptor to its template view for the given surface
// and splice target.
func buildFuncData(f *descriptor.Func, s surface.Surface, target *SpliceTarget) *funcData {
	tensorType := s.TensorType()
	fd := &funcData{
		GoName:        f.GoName,
		NativeOp:      f.NativeOp,
		Doc:           docLines(f),
		ReturnType:    tensorType,
		ReturnsSlice:  f.Returns.Kind == normalize.KindTensorArray,
		KeyVarNumArgs: f.KeyVarNumArgs,
	}
	if fd.ReturnsSlice {
		fd.ReturnType = "[]" + tensorType
	}
	if target != nil && target.Shape == ShapeStruct {
		fd.Recv = target.Receiver + " *" + target.TypeName
		fd.CallPrefix = target.Receiver + "."
	}
	for _, arg := range f.RequiredArgs() {
		fd.Params = append(fd.Params, &paramData{
			GoName:        normalize.ParamName(arg.Name),
			GoType:        arg.Type.GoType(tensorType),
			NativeName:    arg.NativeName,
			IsTensor:      arg.Type.Kind == normalize.KindTensor,
			IsTensorArray: arg.Type.Kind == normalize.KindTensorArray,
		})
	}
	for _, arg := range f.OptionalArgs() {
		fd.Attrs = append(fd.Attrs, &attrData{
			FieldName:  normalize.FieldName(arg.Name),
			FieldType:  arg.Type.AttrFieldType(tensorType),
			NativeName: arg.NativeName,
			Doc:        attrDoc(arg),
			IsArray:    arg.Type.Kind.IsArray(),
			IsTensor:   arg.Type.Kind == normalize.KindTensor,
		})
	}
	return fd
}

func docLines(f *descriptor.Func) []string {
	var lines []string
	if f.Description != "" {
		for _, line := range strings.Split(f.Description, "\n") {
			lines = append(lines, strings.TrimRight(line, " \t"))
		}
	}
	if len(lines) == 0 {
		lines = []string{f.GoName + " wraps the native operator " + quoted(f.NativeOp) + "."}
	}
	return lines
}

func attrDoc(arg *descriptor.Argument) string {
	doc := "native attribute " + quoted(arg.NativeName)
	if arg.Type.Default != "" {
		doc += ", default " + arg.Type.Default
	}
	return doc
}

func quoted(s string) string {
	return `"` + s + `"`
}

var opsTemplate = template.Must(template.New("gen_ops").Parse(
	`/***** File generated by mxbind_generator from the {{.Framework}} operator registry. Don't edit it directly. *****/

package {{.Package}}

{{range .Funcs}}
{{- if .Attrs}}
// {{.GoName}}Attrs holds the optional attributes of {{.GoName}}.
// Nil fields are omitted from the native call; array-typed fields default to
// an empty container.
type {{.GoName}}Attrs struct {
{{- range .Attrs}}
	{{.FieldName}} {{.FieldType}} // {{.Doc}}
{{- end}}
}
{{end}}
{{- range .Doc}}
// {{.}}
{{- end}}
func {{if .Recv}}({{.Recv}}) {{end}}{{.GoName}}({{range .Params}}{{.GoName}} {{.GoType}}, {{end}}{{if .Attrs}}attrs *{{.GoName}}Attrs{{end}}) {{.ReturnType}} {
	call := {{.CallPrefix}}newOpCall("{{.NativeOp}}")
{{- range .Params}}
{{- if .IsTensor}}
	call.Input("{{.NativeName}}", {{.GoName}})
{{- else if .IsTensorArray}}
	call.Inputs("{{.NativeName}}", {{.GoName}}...)
{{- else}}
	call.Attr("{{.NativeName}}", {{.GoName}})
{{- end}}
{{- end}}
{{- if .KeyVarNumArgs}}
	call.Attr("{{.KeyVarNumArgs}}", call.NumInputs())
{{- end}}
{{- if .Attrs}}
	if attrs != nil {
{{- range .Attrs}}
{{- if .IsTensor}}
		if attrs.{{.FieldName}} != nil {
			call.Input("{{.NativeName}}", attrs.{{.FieldName}})
		}
{{- else if .IsArray}}
		call.ArrayAttr("{{.NativeName}}", attrs.{{.FieldName}})
{{- else}}
		call.OptionalAttr("{{.NativeName}}", attrs.{{.FieldName}})
{{- end}}
{{- end}}
	}
{{- end}}
	return call.Invoke{{if .ReturnsSlice}}Multi{{end}}()
}
{{end}}`))

// bridgeTemplate emits the alternate host-language variant: a flat
// string-keyed dispatch table, attribute names kept native.
var bridgeTemplate = template.Must(template.New("gen_optable").Parse(
	`/***** File generated by mxbind_generator from the {{.Framework}} operator registry. Don't edit it directly. *****/

package {{.Package}}

// OpSpec describes one native operator for the host-language bridge.
type OpSpec struct {
	// NativeOp is the operator name to invoke in the native registry.
	NativeOp string
	// Inputs lists the native names of the tensor inputs, in call order.
	Inputs []string
	// Attrs lists the native names of the operator attributes.
	Attrs []string
	// Variadic is set when the operator takes a variable number of inputs;
	// VarNumArgsAttr then names the attribute carrying the input count.
	Variadic       bool
	VarNumArgsAttr string
}

// OpTable indexes every generated operator by its exported name.
var OpTable = map[string]OpSpec{
{{- range .Funcs}}
	"{{.GoName}}": {
		NativeOp: "{{.NativeOp}}",
		Inputs:   []string{ {{range .Params}}{{if or .IsTensor .IsTensorArray}}"{{.NativeName}}", {{end}}{{end}} },
		Attrs:    []string{ {{range .Params}}{{if not (or .IsTensor .IsTensorArray)}}"{{.NativeName}}", {{end}}{{end}}{{range .Attrs}}"{{.NativeName}}", {{end}} },
{{- if .KeyVarNumArgs}}
		Variadic:       true,
		VarNumArgsAttr: "{{.KeyVarNumArgs}}",
{{- end}}
	},
{{- end}}
}
`))

// signaturesTemplate renders interface method signatures for the
// interface-splice shape.
var signaturesTemplate = template.Must(template.New("gen_signatures").Parse(
	`{{range .Funcs}}
	// {{index .Doc 0}}
	{{.GoName}}({{range .Params}}{{.GoName}} {{.GoType}}, {{end}}{{if .Attrs}}attrs *{{.GoName}}Attrs{{end}}) {{.ReturnType}}
{{end}}`))
