// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dspgraph

// Buffer owns or borrows a fixed-length sample vector.
//
// Exactly one Buffer owns any given storage region: Allocate produces an
// owning Buffer, Alias produces a non-owning view of another Buffer's
// storage. Borrowed is set on a Buffer whose storage has been claimed by
// some other port for in-place reuse, so a later reader can tell its data
// may be getting written through an alias.
type Buffer struct {
	data     []Sample
	owner    bool
	borrowed bool
}

// Allocate returns a new owning Buffer of length n.
func Allocate(n int) *Buffer {
	return &Buffer{data: make([]Sample, n), owner: true}
}

// Alias returns a non-owning Buffer sharing other's storage. If
// markBorrowed is set, other.borrowed is set to true.
func Alias(other *Buffer, markBorrowed bool) *Buffer {
	if markBorrowed {
		other.borrowed = true
	}
	return &Buffer{data: other.data, owner: false}
}

// Owner reports whether this Buffer owns its storage.
func (b *Buffer) Owner() bool { return b.owner }

// Borrowed reports whether some other port has claimed this Buffer's
// storage for in-place reuse.
func (b *Buffer) Borrowed() bool { return b.borrowed }

// Len returns the buffer's length in samples.
func (b *Buffer) Len() int { return len(b.data) }

// View returns the buffer's backing slice.
func (b *Buffer) View() []Sample { return b.data }
