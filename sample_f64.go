// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

//go:build !f32

package dspgraph

// Sample is the numeric type carried by every Buffer. Build with -tags f32
// to switch the whole module to float32.
type Sample = float64
