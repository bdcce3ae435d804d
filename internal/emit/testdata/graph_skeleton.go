// Package graph is the hand-written skeleton the generated symbolic-graph
// surface is spliced into.
package graph

import "strconv"

// Node is one node of the symbolic computation graph.
type Node struct {
	op         string
	inputs     []*Node
	inputNames []string
	attrs      map[string]string
}

// Builder accumulates the nodes of one graph under construction.
type Builder struct {
	nodes []*Node
}

// opCall collects the inputs and attributes of one native operator
// invocation before it is issued.
type opCall struct {
	node *Node
}

func newOpCall(op string) *opCall {
	return &opCall{node: &Node{op: op, attrs: make(map[string]string)}}
}

func (b *Builder) newOpCall(op string) *opCall {
	call := newOpCall(op)
	b.nodes = append(b.nodes, call.node)
	return call
}

func (c *opCall) Input(name string, n *Node) {
	c.node.inputNames = append(c.node.inputNames, name)
	c.node.inputs = append(c.node.inputs, n)
}

func (c *opCall) Inputs(name string, nodes ...*Node) {
	for i, n := range nodes {
		c.Input(name+strconv.Itoa(i), n)
	}
}

func (c *opCall) NumInputs() int {
	return len(c.node.inputs)
}

func (c *opCall) Attr(name string, value any) {
	c.node.attrs[name] = attrString(value)
}

// OptionalAttr records the attribute only when the absence marker is not set.
func (c *opCall) OptionalAttr(name string, value any) {
	if value == nil {
		return
	}
	c.Attr(name, value)
}

// ArrayAttr records an array attribute; an empty container is the default and
// is recorded as such.
func (c *opCall) ArrayAttr(name string, value any) {
	c.Attr(name, value)
}

func (c *opCall) Invoke() *Node {
	return c.node
}

func (c *opCall) InvokeMulti() []*Node {
	return []*Node{c.node}
}

func attrString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// Registry is not a valid splice target: it is neither a struct nor an
// interface.
type Registry map[string]*Node
