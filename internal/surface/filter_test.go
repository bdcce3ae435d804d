package surface

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxbind/mxbind/internal/descriptor"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func namedFuncs(names ...string) []*descriptor.Func {
	funcs := make([]*descriptor.Func, len(names))
	for i, name := range names {
		funcs[i] = &descriptor.Func{Name: name, NativeOp: name}
	}
	return funcs
}

func filteredNames(funcs []*descriptor.Func) []string {
	names := make([]string, len(funcs))
	for i, f := range funcs {
		names[i] = f.Name
	}
	return names
}

func TestParse(t *testing.T) {
	for _, name := range []string{"graph", "tensor", "contrib", "bridge"} {
		s, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
		assert.Equal(t, name, s.PackageName())
	}
	_, err := Parse("eager")
	assert.ErrorContains(t, err, "unknown surface")
}

func TestTensorType(t *testing.T) {
	assert.Equal(t, "*Node", SurfaceGraph.TensorType())
	assert.Equal(t, "*Node", SurfaceContrib.TensorType())
	assert.Equal(t, "*Tensor", SurfaceTensor.TensorType())
}

func TestFilterInternalAndContrib(t *testing.T) {
	funcs := namedFuncs("softmax", "_copyto", "_contrib_quantize", "dot")

	// Public surfaces: no internal names, contrib included.
	public := Filter(funcs, SurfaceGraph, nil)
	assert.Equal(t, []string{"softmax", "dot"}, filteredNames(public))

	// Contrib surface: contrib-prefixed names alongside all non-internal
	// names; plain internal names still excluded.
	contrib := Filter(funcs, SurfaceContrib, nil)
	assert.Equal(t, []string{"softmax", "_contrib_quantize", "dot"}, filteredNames(contrib))
}

func TestFilterPolicy(t *testing.T) {
	policy, err := LoadPolicy(filepath.Join("testdata", "policy.yaml"))
	require.NoError(t, err)

	funcs := namedFuncs(
		"Concat", "Reshape", "SliceChannel", "softmax",
		"_random_normal", "_copyto")

	graph := Filter(funcs, SurfaceGraph, policy)
	assert.Equal(t, []string{"SliceChannel", "softmax", "_random_normal"}, filteredNames(graph))

	// Per-surface deny entries stack on the global deny-list.
	tensor := Filter(funcs, SurfaceTensor, policy)
	assert.Equal(t, []string{"softmax", "_random_normal"}, filteredNames(tensor))

	// The allow-list admits internal names on every surface, including
	// contrib.
	contrib := Filter(funcs, SurfaceContrib, policy)
	assert.Contains(t, filteredNames(contrib), "_random_normal")
	assert.NotContains(t, filteredNames(contrib), "_copyto")
}

func TestLoadPolicyRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	writeFile(t, path, "denylist:\n  - Concat\nblocklist:\n  - Reshape\n")
	_, err := LoadPolicy(path)
	assert.ErrorContains(t, err, "failed to parse surface policy")
}

func TestLoadPolicyRejectsUnknownSurface(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	writeFile(t, path, "surfaces:\n  eager:\n    denylist:\n      - Concat\n")
	_, err := LoadPolicy(path)
	assert.ErrorContains(t, err, "unknown surface")
}
