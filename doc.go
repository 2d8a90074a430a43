// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dspgraph compiles a directed graph of signal-processing nodes
// into a scheduled block-processing program and runs it one block at a
// time.
//
// Graph construction
//
// Wrap a user Callback in a Node with NewNode, add it to a Graph with
// Graph.AddNode, and connect nodes with Graph.AddLink. A Link is a pure
// value naming a (from node, output index, to node, input index)
// quadruple; AddLink validates it against the current graph.
//
// Compiling and ticking
//
// Graph.Compile topologically sorts the nodes (detecting cycles),
// allocates every port's buffers (reusing an input's buffer for an
// in-place node's matching output), and calls each Callback's Prepare
// hook. Graph.Tick then walks the compiled order once per block: every
// input port sums its fan-in into a local buffer, and the node's Perform
// hook reads InputView slices and writes OutputView slices. Graph.Stop
// calls every Callback's Release hook and returns the graph to its
// Editable state, where it can be edited again and recompiled.
//
// Buffers
//
// A Buffer owns or borrows a fixed-length Sample vector. Exactly one
// Buffer owns any given storage region; Alias produces a non-owning view
// used for in-place output/input sharing. An input port's read-views into
// upstream output buffers are plain slices of those buffers.
package dspgraph
