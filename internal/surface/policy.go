package surface

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mxbind/mxbind/internal/sets"
)

// Policy declares which operators are excluded from generation and which
// internal operators are explicitly admitted.
type Policy struct {
	// Denylist names operators whose bindings are hand-written; they are
	// never generated, on any surface.
	Denylist []string `yaml:"denylist"`

	// Allowlist names internal-marked operators that generate on every
	// surface despite the marker. The unified random-sampling operators
	// live here.
	Allowlist []string `yaml:"allowlist"`

	// Surfaces adds per-surface deny entries on top of the global Denylist.
	Surfaces map[string]SurfacePolicy `yaml:"surfaces"`
}

// SurfacePolicy is the per-surface part of a Policy.
type SurfacePolicy struct {
	Denylist []string `yaml:"denylist"`
}

// LoadPolicy reads a Policy from a YAML file. Unknown fields are rejected:
// a typo in the policy must fail the run, not silently generate the wrong
// surface.
func LoadPolicy(path string) (*Policy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read surface policy %q", path)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	policy := &Policy{}
	if err := decoder.Decode(policy); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "failed to parse surface policy %q", path)
	}
	for name := range policy.Surfaces {
		if _, err := Parse(name); err != nil {
			return nil, errors.Wrapf(err, "surface policy %q", path)
		}
	}
	return policy, nil
}

// denied returns the full deny set effective on the given surface.
func (p *Policy) denied(s Surface) sets.Set[string] {
	if p == nil {
		return sets.Make[string]()
	}
	deny := sets.MakeWith(p.Denylist...)
	if sp, found := p.Surfaces[s.String()]; found {
		deny.Insert(sp.Denylist...)
	}
	return deny
}

// allowed returns the set of internal names admitted by the allow-list.
func (p *Policy) allowed() sets.Set[string] {
	if p == nil {
		return sets.Make[string]()
	}
	return sets.MakeWith(p.Allowlist...)
}
