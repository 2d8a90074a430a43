// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dspgraph

import "fmt"

// InvalidHandleError reports a nil Node or Link passed to an Add* operation.
type InvalidHandleError struct {
	Op string
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("%s: invalid (nil) handle", e.Op)
}

// DuplicateNodeError reports a node already present in the graph.
type DuplicateNodeError struct {
	Node *Node
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node %q is already in the graph", e.Node.Name())
}

// NodeNotInGraphError reports a link referencing a node the graph doesn't own.
type NodeNotInGraphError struct {
	Node *Node
}

func (e *NodeNotInGraphError) Error() string {
	return fmt.Sprintf("node %q is not in the graph", e.Node.Name())
}

// IndexOutOfRangeError reports a port index beyond a node's arity.
type IndexOutOfRangeError struct {
	Node  *Node
	Index int
	Input bool
}

func (e *IndexOutOfRangeError) Error() string {
	dir := "input"
	if !e.Input {
		dir = "output"
	}
	return fmt.Sprintf("%s index %d out of range for node %q", dir, e.Index, e.Node.Name())
}

// DuplicateConnectionError reports an (node, port) pair already subscribed.
type DuplicateConnectionError struct {
	From, To *Node
}

func (e *DuplicateConnectionError) Error() string {
	return fmt.Sprintf("the link from %q to %q is already present in the graph", e.From.Name(), e.To.Name())
}

// SelfConnectionError reports a link whose from and to nodes are identical.
type SelfConnectionError struct {
	Node *Node
}

func (e *SelfConnectionError) Error() string {
	return fmt.Sprintf("node %q cannot link to itself", e.Node.Name())
}

// NotEditableError reports a structural edit attempted on a Compiled graph.
type NotEditableError struct {
	Op string
}

func (e *NotEditableError) Error() string {
	return fmt.Sprintf("%s: graph is compiled, not editable", e.Op)
}

// NotCompiledError reports a Tick attempted before Compile.
type NotCompiledError struct{}

func (e *NotCompiledError) Error() string {
	return "graph has not been compiled"
}

// CycleError reports a cycle found during topological sort, naming the two
// nodes bracketing it: the node being discovered and the predecessor whose
// DFS rediscovered it while still "visiting".
type CycleError struct {
	Node, Predecessor *Node
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle: node %q feeds back to node %q", e.Predecessor.Name(), e.Node.Name())
}

// SampleRateMismatchError reports two connected nodes prepared with
// different sample rates.
type SampleRateMismatchError struct {
	Node, Upstream *Node
}

func (e *SampleRateMismatchError) Error() string {
	return fmt.Sprintf("two connected nodes don't have the same sample rate: %q (%d) and %q (%d)",
		e.Node.Name(), e.Node.sampleRate, e.Upstream.Name(), e.Upstream.sampleRate)
}

// BlockSizeMismatchError reports two connected nodes prepared with
// different block sizes.
type BlockSizeMismatchError struct {
	Node, Upstream *Node
}

func (e *BlockSizeMismatchError) Error() string {
	return fmt.Sprintf("two connected nodes don't have the same block size: %q (%d) and %q (%d)",
		e.Node.Name(), e.Node.blockSize, e.Upstream.Name(), e.Upstream.blockSize)
}

// MissingBackReferenceError reports an internal invariant violation: an
// input records an upstream node whose outputs don't list us as a
// subscriber.
type MissingBackReferenceError struct {
	Node, Upstream *Node
}

func (e *MissingBackReferenceError) Error() string {
	return fmt.Sprintf("internal error: node %q has no back-reference to %q", e.Upstream.Name(), e.Node.Name())
}

// InplaceUnavailableError reports that in-place output/input sharing was
// requested but the matching input has no buffer to share.
type InplaceUnavailableError struct {
	Node *Node
}

func (e *InplaceUnavailableError) Error() string {
	return fmt.Sprintf("node %q requested in-place output but has no matching input buffer", e.Node.Name())
}

// LinkNotFoundError reports a RemoveLink call naming a link the graph
// doesn't currently hold.
type LinkNotFoundError struct {
	Link Link
}

func (e *LinkNotFoundError) Error() string {
	return fmt.Sprintf("no link from %q:%d to %q:%d", e.Link.From.Name(), e.Link.FromOut, e.Link.To.Name(), e.Link.ToIn)
}

// AllocationError reports a buffer allocation the host refused. No
// operation in this package returns it: Allocate does not detect a refused
// allocation.
type AllocationError struct {
	Node *Node
	N    int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("node %q: failed to allocate a buffer of %d samples", e.Node.Name(), e.N)
}
