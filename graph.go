// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dspgraph

import (
	"sort"
	"sync"
)

type graphState int

const (
	editable graphState = iota
	compiled
)

// Graph owns a set of Nodes and Links, compiles them into a topologically
// ordered, buffer-allocated schedule, and drives per-block execution.
//
// The zero value is not usable; construct with NewGraph. A Graph is safe
// for concurrent use by exactly two callers: a control thread invoking
// AddNode/AddLink/RemoveLink/RemoveNode/Compile/Stop, and an audio thread
// invoking Tick. A single mutex serializes all of the above; Tick is
// expected to win that lock quickly since control operations are rare and
// short.
type Graph struct {
	mu    sync.Mutex
	state graphState

	sampleRate int
	blockSize  int

	nodes    []*Node
	links    []Link
	executed []*Node

	topoCounter uint32
}

// NewGraph returns an empty, Editable Graph.
func NewGraph() *Graph {
	return &Graph{state: editable}
}

// SampleRate returns the sample rate of the last successful Compile.
func (g *Graph) SampleRate() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sampleRate
}

// BlockSize returns the block size of the last successful Compile.
func (g *Graph) BlockSize() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.blockSize
}

// AddNode adds n to the graph. The graph must be Editable. n must be
// non-nil and not already present in the graph.
func (g *Graph) AddNode(n *Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n == nil {
		return &InvalidHandleError{Op: "AddNode"}
	}
	if g.state != editable {
		return &NotEditableError{Op: "AddNode"}
	}
	for _, existing := range g.nodes {
		if existing == n {
			return &DuplicateNodeError{Node: n}
		}
	}
	n.graph = g
	n.removed = false
	g.nodes = append(g.nodes, n)
	return nil
}

func (g *Graph) hasNode(n *Node) bool {
	for _, existing := range g.nodes {
		if existing == n {
			return true
		}
	}
	return false
}

// AddLink connects link.From's output link.FromOut to link.To's input
// link.ToIn. The graph must be Editable, both nodes must already be in the
// graph, from != to, and the port indices must be in range. Duplicate
// links are rejected.
func (g *Graph) AddLink(link Link) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if link.From == nil || link.To == nil {
		return &InvalidHandleError{Op: "AddLink"}
	}
	if g.state != editable {
		return &NotEditableError{Op: "AddLink"}
	}
	if link.From == link.To {
		return &SelfConnectionError{Node: link.From}
	}
	if !g.hasNode(link.From) {
		return &NodeNotInGraphError{Node: link.From}
	}
	if !g.hasNode(link.To) {
		return &NodeNotInGraphError{Node: link.To}
	}
	if err := link.From.addOutputSubscriber(link.To, link.FromOut); err != nil {
		return err
	}
	if err := link.To.addInputSubscriber(link.From, link.ToIn); err != nil {
		link.From.removeOutputSubscriber(link.To, link.FromOut)
		return err
	}
	g.links = append(g.links, link)
	return nil
}

// RemoveLink undoes a previous AddLink, leaving the graph structurally
// identical to before that call. The graph must be Editable and the link
// must currently be present.
func (g *Graph) RemoveLink(link Link) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != editable {
		return &NotEditableError{Op: "RemoveLink"}
	}
	for i, l := range g.links {
		if l.equal(link) {
			link.From.removeOutputSubscriber(link.To, link.FromOut)
			link.To.removeInputSubscriber(link.From, link.ToIn)
			g.links = append(g.links[:i], g.links[i+1:]...)
			return nil
		}
	}
	return &LinkNotFoundError{Link: link}
}

// RemoveNode removes n and every link touching it from the graph. The
// graph must be Editable. n is not dropped from the graph's understanding
// of prior compiles; it is simply no longer considered on the next
// Compile.
func (g *Graph) RemoveNode(n *Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != editable {
		return &NotEditableError{Op: "RemoveNode"}
	}
	idx := -1
	for i, existing := range g.nodes {
		if existing == n {
			idx = i
			break
		}
	}
	if idx == -1 {
		return &NodeNotInGraphError{Node: n}
	}
	remaining := g.links[:0:0]
	for _, l := range g.links {
		if l.From == n || l.To == n {
			l.From.removeOutputSubscriber(l.To, l.FromOut)
			l.To.removeInputSubscriber(l.From, l.ToIn)
			continue
		}
		remaining = append(remaining, l)
	}
	g.links = remaining
	g.nodes = append(g.nodes[:idx], g.nodes[idx+1:]...)
	n.removed = true
	n.graph = nil
	return nil
}

// sortVisit is the DFS step of the topological sort: it assigns n a
// strictly increasing topoIndex only after every upstream node feeding any
// of n's inputs has been assigned one, detecting cycles via the visiting
// set. pred is the node whose DFS is recursing into n, used only to name
// the cycle in CycleError; for the initial, non-recursive call pred == n,
// so a self-loop reports CycleError{n, n}.
func (g *Graph) sortVisit(n, pred *Node, visiting map[*Node]bool) error {
	if n.topoIndex != 0 {
		return nil
	}
	if visiting[n] {
		return &CycleError{Node: n, Predecessor: pred}
	}
	visiting[n] = true
	for _, in := range n.inputs {
		for _, u := range in.upstream {
			if err := g.sortVisit(u, n, visiting); err != nil {
				return err
			}
		}
	}
	g.topoCounter++
	n.topoIndex = g.topoCounter
	delete(visiting, n)
	return nil
}

func (g *Graph) rollbackCompile() {
	for _, n := range g.nodes {
		n.topoIndex = 0
		n.shouldPerform = false
		for _, in := range n.inputs {
			in.sumBuf = nil
			in.views = nil
		}
		for _, out := range n.outputs {
			out.buf = nil
		}
	}
	g.executed = nil
}

// Compile performs the topological sort, allocates every port's buffers,
// and transitions the graph to Compiled. If the graph was already
// Compiled, it is stopped first. On any error the graph rolls back to
// Editable with topological indices cleared and no buffers retained.
func (g *Graph) Compile(sampleRate, blockSize int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == compiled {
		g.stopLocked()
	}
	g.sampleRate = sampleRate
	g.blockSize = blockSize
	g.topoCounter = 0
	for _, n := range g.nodes {
		n.topoIndex = 0
		n.sampleRate = sampleRate
		n.blockSize = blockSize
	}

	visiting := make(map[*Node]bool, len(g.nodes))
	for _, n := range g.nodes {
		if err := g.sortVisit(n, n, visiting); err != nil {
			g.rollbackCompile()
			return err
		}
	}

	sort.SliceStable(g.nodes, func(i, j int) bool {
		return g.nodes[i].topoIndex < g.nodes[j].topoIndex
	})

	executed := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if err := n.prepare(); err != nil {
			g.rollbackCompile()
			return err
		}
		if n.shouldPerform {
			executed = append(executed, n)
		}
	}
	g.executed = executed
	g.state = compiled
	return nil
}

// Tick executes the compiled schedule once, in topological order. The
// graph must be Compiled.
func (g *Graph) Tick() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != compiled {
		return &NotCompiledError{}
	}
	for _, n := range g.executed {
		n.tick()
	}
	return nil
}

// Stop releases every node's callback resources and transitions the graph
// back to Editable.
func (g *Graph) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	return nil
}

func (g *Graph) stopLocked() {
	for _, n := range g.nodes {
		n.stop()
	}
	g.executed = nil
	g.state = editable
}

// Nodes returns a copy of the graph's current node list, in its last
// sorted (or insertion) order.
func (g *Graph) Nodes() []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}
