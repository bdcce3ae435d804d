// Package backends declares the interface every execution backend implements.
package backends

// Op is an opaque handle to a backend operation.
type Op any

// StandardOps is the method set the generator extends with one signature per
// registered operator.
type StandardOps interface {
	// Name identifies the backend.
	Name() string
}
