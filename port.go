// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dspgraph

import "dspgraph.dev/dspgraph/vecops"

// OutputPort belongs to a specific Node and holds the set of downstream
// nodes subscribed to it (the "subscribers") along with the write buffer
// those subscribers will eventually read from.
type OutputPort struct {
	index       int
	buf         *Buffer
	subscribers []*Node
}

func newOutputPort(index int) *OutputPort {
	return &OutputPort{index: index}
}

// addSubscriber records a downstream node reading this output. Duplicate
// subscriptions are rejected.
func (p *OutputPort) addSubscriber(n *Node) bool {
	for _, s := range p.subscribers {
		if s == n {
			return false
		}
	}
	p.subscribers = append(p.subscribers, n)
	return true
}

func (p *OutputPort) removeSubscriber(n *Node) {
	for i, s := range p.subscribers {
		if s == n {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *OutputPort) hasSubscriber(n *Node) bool {
	for _, s := range p.subscribers {
		if s == n {
			return true
		}
	}
	return false
}

// prepare allocates the port's write buffer: a fresh owning buffer, unless
// owner is in-place and has a matching input index, in which case the
// buffer aliases that input's summation buffer. Outputs whose index has no
// matching input (index >= N_in) always get a fresh owning buffer, even
// when the node is in-place.
func (p *OutputPort) prepare(owner *Node) error {
	p.buf = nil
	if owner.inplace && owner.NIn() > p.index {
		in := owner.inputs[p.index]
		if in.sumBuf == nil {
			return &InplaceUnavailableError{Node: owner}
		}
		p.buf = Alias(in.sumBuf, true)
		return nil
	}
	p.buf = Allocate(owner.blockSize)
	return nil
}

// writeView returns the slice a Node's Perform callback writes into.
func (p *OutputPort) writeView() []Sample {
	return p.buf.View()
}

// InputPort belongs to a specific Node and resolves fan-in: the upstream
// nodes recorded at link time are turned, at prepare time, into read-views
// into their output buffers, and summed into a local buffer every tick.
type InputPort struct {
	index    int
	sumBuf   *Buffer
	upstream []*Node
	views    [][]Sample
}

func newInputPort(index int) *InputPort {
	return &InputPort{index: index}
}

func (p *InputPort) addUpstream(n *Node) bool {
	for _, u := range p.upstream {
		if u == n {
			return false
		}
	}
	p.upstream = append(p.upstream, n)
	return true
}

func (p *InputPort) removeUpstream(n *Node) {
	for i, u := range p.upstream {
		if u == n {
			p.upstream = append(p.upstream[:i], p.upstream[i+1:]...)
			return
		}
	}
}

func (p *InputPort) hasUpstream(n *Node) bool {
	for _, u := range p.upstream {
		if u == n {
			return true
		}
	}
	return false
}

// prepare resolves fan-in for owner: every live upstream node must share
// owner's sample rate and block size, and must list owner among the
// subscribers of the specific output port it connects through. The
// resulting read-views are cached for sum(); a fresh summation buffer is
// allocated at the end.
func (p *InputPort) prepare(owner *Node) error {
	live := p.upstream[:0:0]
	for _, u := range p.upstream {
		if u.removed {
			continue
		}
		live = append(live, u)
	}
	p.upstream = live

	views := make([][]Sample, 0, len(live))
	for _, u := range live {
		if u.sampleRate != owner.sampleRate {
			return &SampleRateMismatchError{Node: owner, Upstream: u}
		}
		if u.blockSize != owner.blockSize {
			return &BlockSizeMismatchError{Node: owner, Upstream: u}
		}
		var out *OutputPort
		for _, l := range owner.graph.links {
			if l.From == u && l.To == owner && l.ToIn == p.index {
				if o := u.outputs[l.FromOut]; o.hasSubscriber(owner) {
					out = o
				}
				break
			}
		}
		if out == nil {
			return &MissingBackReferenceError{Node: owner, Upstream: u}
		}
		views = append(views, out.writeView())
	}
	p.views = views
	p.sumBuf = Allocate(owner.blockSize)
	return nil
}

// sum copies the first live upstream's samples into the summation buffer
// and adds the rest, with a fresh counter each call (copy-then-add, never
// zero-then-add, per the required semantics). With zero live upstreams the
// summation buffer is left untouched.
func (p *InputPort) sum() {
	if len(p.views) == 0 {
		return
	}
	dst := p.sumBuf.View()
	vecops.Copy(dst, p.views[0])
	for i := 1; i < len(p.views); i++ {
		vecops.Add(dst, p.views[i])
	}
}

func (p *InputPort) readView() []Sample {
	return p.sumBuf.View()
}
