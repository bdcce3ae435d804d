package descriptor

import (
	"github.com/gomlx/exceptions"
	"github.com/mxbind/mxbind/internal/normalize"
	"github.com/mxbind/mxbind/internal/opregistry"
)

// Reflect enumerates every operator registered in reg and produces exactly one
// descriptor per operator, in sorted name order.
//
// Any failure is fatal to the generation run: an unresolvable operator handle
// or an argument type with no known mapping aborts with a panic. There is no
// partial-output contract.
func Reflect(reg opregistry.Registry) []*Func {
	names := reg.OperatorNames()
	funcs := make([]*Func, 0, len(names))
	for _, name := range names {
		op, err := reg.Lookup(name)
		if err != nil {
			exceptions.Panicf("failed to resolve operator %q: %v", name, err)
		}
		funcs = append(funcs, reflectOp(op))
	}
	SortByName(funcs)
	return funcs
}

func reflectOp(op *opregistry.OperatorInfo) *Func {
	f := &Func{
		Name:          op.Name,
		NativeOp:      op.Name,
		GoName:        normalize.GoName(op.Name),
		Description:   op.Description,
		KeyVarNumArgs: op.KeyVarNumArgs,
	}

	returns, err := normalize.ParseType(op.ReturnType)
	if err != nil {
		exceptions.Panicf("operator %q: bad return type: %v", op.Name, err)
	}
	if returns.Kind != normalize.KindTensor && returns.Kind != normalize.KindTensorArray {
		exceptions.Panicf("operator %q: unexpected return kind %s", op.Name, returns.Kind)
	}
	f.Returns = returns

	for _, arg := range op.Args {
		if arg.Name == op.KeyVarNumArgs {
			// The variadic count attribute is filled in by the emitted call
			// site, not by the caller.
			continue
		}
		argType, err := normalize.ParseType(arg.TypeInfo)
		if err != nil {
			exceptions.Panicf("operator %q, argument %q: %v", op.Name, arg.Name, err)
		}
		f.Args = append(f.Args, &Argument{
			Name:        arg.Name,
			NativeName:  arg.Name,
			Type:        argType,
			Description: arg.Description,
		})
	}
	return f
}
