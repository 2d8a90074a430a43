// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dspgraph

// stubCallback is a Callback whose hooks are supplied as closures, used
// throughout the test suite to build small example graphs without a
// proliferation of one-off named types.
type stubCallback struct {
	name      string
	nIn, nOut int
	prepareFn func(n *Node)
	performFn func(n *Node)
	releaseFn func(n *Node)
}

func (c *stubCallback) Name() string   { return c.name }
func (c *stubCallback) NInputs() int   { return c.nIn }
func (c *stubCallback) NOutputs() int  { return c.nOut }
func (c *stubCallback) Prepare(n *Node) {
	if c.prepareFn != nil {
		c.prepareFn(n)
	}
}
func (c *stubCallback) Perform(n *Node) {
	if c.performFn != nil {
		c.performFn(n)
	}
}
func (c *stubCallback) Release(n *Node) {
	if c.releaseFn != nil {
		c.releaseFn(n)
	}
}

// constGen fills its single output with a constant value every tick.
func constGen(name string, v Sample) *Node {
	return NewNode(&stubCallback{
		name: name, nIn: 0, nOut: 1,
		performFn: func(n *Node) {
			out := n.OutputView(0)
			for i := range out {
				out[i] = v
			}
		},
	})
}

// scalarAdd adds a constant to its single input, writing to its single output.
func scalarAdd(name string, c Sample) *Node {
	return NewNode(&stubCallback{
		name: name, nIn: 1, nOut: 1,
		performFn: func(n *Node) {
			in := n.InputView(0)
			out := n.OutputView(0)
			for i := range in {
				out[i] = in[i] + c
			}
		},
	})
}

// vectorAdd sums its two inputs into its single output.
func vectorAdd(name string) *Node {
	return NewNode(&stubCallback{
		name: name, nIn: 2, nOut: 1,
		performFn: func(n *Node) {
			a := n.InputView(0)
			b := n.InputView(1)
			out := n.OutputView(0)
			for i := range out {
				out[i] = a[i] + b[i]
			}
		},
	})
}

// sink just records the last block it saw on its single input.
type sink struct {
	node *Node
	last []Sample
}

func newSink(name string) *sink {
	s := &sink{}
	s.node = NewNode(&stubCallback{
		name: name, nIn: 1, nOut: 0,
		performFn: func(n *Node) {
			in := n.InputView(0)
			s.last = append(s.last[:0], in...)
		},
	})
	return s
}
