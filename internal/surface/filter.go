package surface

import (
	"github.com/mxbind/mxbind/internal/descriptor"
)

// Filter returns the subset of descriptors relevant to the target surface,
// preserving the input order:
//
//   - Deny-listed operators (hand-written bindings) never generate.
//   - Internal-marked names are excluded, unless the surface admits contrib
//     operators, in which case contrib-prefixed names are included alongside
//     all non-internal names.
//   - Allow-listed internal names generate on every surface.
//
// policy may be nil, meaning no deny- or allow-list.
func Filter(funcs []*descriptor.Func, s Surface, policy *Policy) []*descriptor.Func {
	deny := policy.denied(s)
	allow := policy.allowed()

	out := make([]*descriptor.Func, 0, len(funcs))
	for _, f := range funcs {
		if deny.Has(f.Name) {
			continue
		}
		if f.IsInternal() && !allow.Has(f.Name) {
			if !s.ContribEnabled() || !f.IsContrib() {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}
