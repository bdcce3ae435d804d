package descriptor

import (
	"strings"

	"github.com/mxbind/mxbind/internal/normalize"
)

// The native framework registers each random distribution twice: once in the
// "_random_" family, taking scalar distribution parameters, and once in the
// "_sample_" family, taking per-element tensor parameters. For some
// distributions the two families disagree on argument naming: "_random_normal"
// uses loc/scale where "_sample_normal" uses mu/sigma.
//
// UnifyRandom folds both families into a single canonical descriptor per
// distribution, named after the "_random_" family. The canonical argument
// names are the "_random_" family's; NativeName keeps the registry spelling so
// the emitted call site reverses the rename when the call is issued.

const (
	randomFamilyPrefix = "_random_"
	sampleFamilyPrefix = "_sample_"
)

// sampleArgAliases maps the "_sample_" family's argument spellings to the
// canonical "_random_" family names.
var sampleArgAliases = map[string]string{
	"mu":    "loc",
	"sigma": "scale",
}

// UnifyRandom deduplicates the random-sampling operator descriptors by
// canonical distribution name. The "_random_" family member is preferred as
// the surviving descriptor; its argument list, including its optionality
// flags, wins as-is. Non-random descriptors pass through untouched.
//
// The transform is idempotent: unifying an already-unified set is a no-op.
func UnifyRandom(funcs []*Func) []*Func {
	primaries := make(map[string]*Func) // canonical name -> surviving descriptor
	order := make([]string, 0, len(funcs))
	out := make([]*Func, 0, len(funcs))

	for _, f := range funcs {
		dist, fromSampleFamily, isRandom := splitRandomName(f.Name)
		if !isRandom {
			out = append(out, f)
			continue
		}
		canonical := randomFamilyPrefix + dist
		current, found := primaries[canonical]
		if !found {
			primaries[canonical] = canonicalizeRandom(f, canonical)
			order = append(order, canonical)
			continue
		}
		// Deduplicate: the "_random_" family member replaces a "_sample_"
		// placeholder, every other duplicate is dropped.
		if !fromSampleFamily && current.NativeOp != canonical {
			primaries[canonical] = canonicalizeRandom(f, canonical)
		}
	}

	for _, canonical := range order {
		out = append(out, primaries[canonical])
	}
	SortByName(out)
	return out
}

// splitRandomName reports whether name belongs to one of the two
// random-sampling families, and if so which distribution it draws from.
func splitRandomName(name string) (dist string, fromSampleFamily, isRandom bool) {
	if dist, ok := strings.CutPrefix(name, randomFamilyPrefix); ok {
		return dist, false, true
	}
	if dist, ok := strings.CutPrefix(name, sampleFamilyPrefix); ok {
		return dist, true, true
	}
	return "", false, false
}

// canonicalizeRandom renames f to the canonical distribution name and its
// arguments to the canonical spellings, preserving the native names for
// call construction.
func canonicalizeRandom(f *Func, canonical string) *Func {
	c := f.clone()
	c.Name = canonical
	c.GoName = normalize.GoName(canonical)
	for _, arg := range c.Args {
		if alias, found := sampleArgAliases[arg.NativeName]; found {
			arg.Name = alias
		}
	}
	return c
}
