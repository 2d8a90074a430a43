// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dspgraph

// Callback is the user-supplied signal-processing behavior a Node wraps.
//
// Prepare is called once per Compile. It may inspect connection state via
// the Node's IsInputConnected/IsOutputConnected, call SetInplace, and call
// SetShouldPerform. It must not allocate per-sample storage for later
// realtime use; any such allocation must complete before Prepare returns.
//
// Perform is called once per tick. It reads InputView(i) slices and writes
// OutputView(i) slices. It must be realtime-safe: no allocation, no locks,
// no I/O.
//
// Release is called on Stop (and when Compile recompiles an already
// Compiled graph) and frees whatever Prepare allocated.
type Callback interface {
	Name() string
	NInputs() int
	NOutputs() int
	Prepare(n *Node)
	Perform(n *Node)
	Release(n *Node)
}

// Node wraps one user-supplied Callback. It owns its Input and Output
// ports, exposes the lifecycle hooks Prepare/Perform/Release through its
// Callback, and is the vertex type of a Graph.
type Node struct {
	graph    *Graph
	callback Callback

	nIn, nOut int
	sampleRate, blockSize int

	inputs  []*InputPort
	outputs []*OutputPort

	inplace       bool
	shouldPerform bool
	topoIndex     uint32
	removed       bool
}

// NewNode wraps cb in a new, as-yet-unowned Node. Add it to a Graph with
// Graph.AddNode before connecting or compiling it.
func NewNode(cb Callback) *Node {
	nIn, nOut := cb.NInputs(), cb.NOutputs()
	n := &Node{
		callback: cb,
		nIn:      nIn,
		nOut:     nOut,
		inplace:  true,
	}
	n.inputs = make([]*InputPort, nIn)
	for i := range n.inputs {
		n.inputs[i] = newInputPort(i)
	}
	n.outputs = make([]*OutputPort, nOut)
	for i := range n.outputs {
		n.outputs[i] = newOutputPort(i)
	}
	return n
}

// Name returns the wrapped callback's name, for diagnostics only.
func (n *Node) Name() string { return n.callback.Name() }

// NIn returns the node's fixed number of input ports.
func (n *Node) NIn() int { return n.nIn }

// NOut returns the node's fixed number of output ports.
func (n *Node) NOut() int { return n.nOut }

// SampleRate returns the sample rate cached at the last Compile.
func (n *Node) SampleRate() int { return n.sampleRate }

// BlockSize returns the block size cached at the last Compile.
func (n *Node) BlockSize() int { return n.blockSize }

// InputView returns input port i's summation buffer, for use inside Perform.
func (n *Node) InputView(i int) []Sample {
	return n.inputs[i].readView()
}

// OutputView returns output port i's write buffer, for use inside Perform.
func (n *Node) OutputView(i int) []Sample {
	return n.outputs[i].writeView()
}

// IsInputConnected reports whether input port i has at least one upstream.
func (n *Node) IsInputConnected(i int) bool {
	return len(n.inputs[i].upstream) > 0
}

// IsOutputConnected reports whether output port i has at least one subscriber.
func (n *Node) IsOutputConnected(i int) bool {
	return len(n.outputs[i].subscribers) > 0
}

// OverrideSampleRate lets a Callback's Prepare hook declare a fixed sample
// rate for this node — e.g. a source wrapping a hardware device with a
// native rate independent of the graph's configured rate — so that
// Compile's SampleRateMismatch check can catch the incompatibility against
// its neighbors instead of silently processing mismatched audio.
func (n *Node) OverrideSampleRate(rate int) { n.sampleRate = rate }

// OverrideBlockSize is the BlockSizeMismatch analogue of OverrideSampleRate.
func (n *Node) OverrideBlockSize(size int) { n.blockSize = size }

// SetInplace sets whether this node's outputs may share storage with its
// inputs. Meant to be called from within Callback.Prepare.
func (n *Node) SetInplace(flag bool) { n.inplace = flag }

// SetShouldPerform sets whether this node stays active after Prepare.
// Meant to be called from within Callback.Prepare.
func (n *Node) SetShouldPerform(flag bool) { n.shouldPerform = flag }

// ShouldPerform reports whether the node is currently active.
func (n *Node) ShouldPerform() bool { return n.shouldPerform }

// Inplace reports whether the node's outputs may share storage with inputs.
func (n *Node) Inplace() bool { return n.inplace }

func (n *Node) addInputSubscriber(remote *Node, index int) error {
	if index < 0 || index >= len(n.inputs) {
		return &IndexOutOfRangeError{Node: n, Index: index, Input: true}
	}
	if !n.inputs[index].addUpstream(remote) {
		return &DuplicateConnectionError{From: remote, To: n}
	}
	return nil
}

func (n *Node) addOutputSubscriber(remote *Node, index int) error {
	if index < 0 || index >= len(n.outputs) {
		return &IndexOutOfRangeError{Node: n, Index: index, Input: false}
	}
	if !n.outputs[index].addSubscriber(remote) {
		return &DuplicateConnectionError{From: n, To: remote}
	}
	return nil
}

func (n *Node) removeInputSubscriber(remote *Node, index int) {
	n.inputs[index].removeUpstream(remote)
}

func (n *Node) removeOutputSubscriber(remote *Node, index int) {
	n.outputs[index].removeSubscriber(remote)
}

// prepare implements the per-compile lifecycle step: mark the node active,
// run the user Prepare hook (which may flip inplace/shouldPerform), and if
// still active, prepare every input then every output port in order
// (inputs first, since in-place outputs borrow an input's buffer).
func (n *Node) prepare() error {
	n.shouldPerform = true
	n.callback.Prepare(n)
	if !n.shouldPerform {
		return nil
	}
	for _, in := range n.inputs {
		if err := in.prepare(n); err != nil {
			return err
		}
	}
	for _, out := range n.outputs {
		if err := out.prepare(n); err != nil {
			return err
		}
	}
	return nil
}

// tick sums every input's fan-in, then invokes the user Perform hook.
func (n *Node) tick() {
	for _, in := range n.inputs {
		in.sum()
	}
	n.callback.Perform(n)
}

// stop invokes the user Release hook and deactivates the node.
func (n *Node) stop() {
	n.callback.Release(n)
	n.shouldPerform = false
}
