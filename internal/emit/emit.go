// Package emit synthesizes one callable definition per operator descriptor
// and merges the result into the target surface's skeleton.
//
// Three splice shapes are supported: free functions in a package, methods on a
// struct, and method signatures inserted into an interface body. Any other
// target shape aborts the generation run.
package emit

import (
	"bytes"
	"go/format"
	"path/filepath"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/mxbind/mxbind/internal/descriptor"
	"github.com/mxbind/mxbind/internal/surface"
)

// Options configures one emission pass.
type Options struct {
	Surface surface.Surface

	// Framework labels the generated file header, e.g. "mxnet 1.9.1".
	Framework string

	// Target is the analyzed splice destination. Nil emits free functions
	// into a fresh file of the surface's default package.
	Target *SpliceTarget
}

// Generate renders the generated source for the filtered, normalized
// descriptors and returns it with the file name it should be written under.
// The output is gofmt'ed; source that does not format is a bug in the
// templates and fails the run.
func Generate(funcs []*descriptor.Func, opts Options) ([]byte, string, error) {
	framework := opts.Framework
	if framework == "" {
		framework = "native"
	}

	if opts.Surface == surface.SurfaceBridge {
		if opts.Target != nil && opts.Target.Shape != ShapePackage {
			exceptions.Panicf("the bridge surface only splices into a package, not a %s", opts.Target.Shape)
		}
		return renderBridge(funcs, framework, opts)
	}

	data := &fileData{
		Framework: framework,
		Package:   opts.Surface.PackageName(),
	}
	if opts.Target != nil {
		data.Package = opts.Target.PackageName
	}
	for _, f := range funcs {
		data.Funcs = append(data.Funcs, buildFuncData(f, opts.Surface, opts.Target))
	}

	if opts.Target != nil && opts.Target.Shape == ShapeInterface {
		return renderInterfaceSplice(data, opts.Target)
	}

	var buf bytes.Buffer
	if err := opsTemplate.Execute(&buf, data); err != nil {
		return nil, "", errors.Wrap(err, "failed to render surface template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, "", errors.Wrapf(err, "generated source for surface %s does not format", opts.Surface)
	}
	return src, "gen_" + opts.Surface.PackageName() + "_ops.go", nil
}

func renderBridge(funcs []*descriptor.Func, framework string, opts Options) ([]byte, string, error) {
	data := &fileData{
		Framework: framework,
		Package:   surface.SurfaceBridge.PackageName(),
	}
	if opts.Target != nil {
		data.Package = opts.Target.PackageName
	}
	for _, f := range funcs {
		data.Funcs = append(data.Funcs, buildFuncData(f, surface.SurfaceBridge, nil))
	}
	var buf bytes.Buffer
	if err := bridgeTemplate.Execute(&buf, data); err != nil {
		return nil, "", errors.Wrap(err, "failed to render bridge template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, "", errors.Wrap(err, "generated bridge table does not format")
	}
	return src, "gen_optable.go", nil
}

func renderInterfaceSplice(data *fileData, target *SpliceTarget) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := signaturesTemplate.Execute(&buf, data); err != nil {
		return nil, "", errors.Wrap(err, "failed to render interface signatures")
	}
	src, err := format.Source(target.spliceInterface(buf.Bytes()))
	if err != nil {
		return nil, "", errors.Wrapf(err, "spliced interface %q does not format", target.TypeName)
	}
	base := filepath.Base(target.Path)
	name := "gen_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".go"
	return src, name, nil
}
