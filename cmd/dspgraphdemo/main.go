// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command dspgraphdemo builds a small noise -> gain -> stereo-duplicating
// sink graph and ticks it a configurable number of times, reporting basic
// stats. It exists to give the dspgraph module a runnable end-to-end path
// exercising internal/driver.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"dspgraph.dev/dspgraph"
	"dspgraph.dev/dspgraph/internal/driver"
)

type noiseCallback struct {
	rng *rand.Rand
}

func (noiseCallback) Name() string  { return "noise" }
func (noiseCallback) NInputs() int  { return 0 }
func (noiseCallback) NOutputs() int { return 1 }
func (noiseCallback) Prepare(*dspgraph.Node) {}
func (c *noiseCallback) Perform(n *dspgraph.Node) {
	out := n.OutputView(0)
	for i := range out {
		out[i] = dspgraph.Sample(c.rng.Float64()*2 - 1)
	}
}
func (noiseCallback) Release(*dspgraph.Node) {}

type gainCallback struct {
	gain dspgraph.Sample
}

func (gainCallback) Name() string  { return "gain" }
func (gainCallback) NInputs() int  { return 1 }
func (gainCallback) NOutputs() int { return 1 }
func (gainCallback) Prepare(*dspgraph.Node) {}
func (c *gainCallback) Perform(n *dspgraph.Node) {
	in := n.InputView(0)
	out := n.OutputView(0)
	for i := range in {
		out[i] = in[i] * c.gain
	}
}
func (gainCallback) Release(*dspgraph.Node) {}

// dupSink duplicates its single input channel onto two "speaker" outputs,
// standing in for a concrete DAC node. It has no outputs of its own: it's
// a terminal node that just records peak levels.
type dupSink struct {
	leftPeak, rightPeak dspgraph.Sample
}

func (dupSink) Name() string  { return "dup_sink" }
func (dupSink) NInputs() int  { return 1 }
func (dupSink) NOutputs() int { return 0 }
func (dupSink) Prepare(*dspgraph.Node) {}
func (c *dupSink) Perform(n *dspgraph.Node) {
	in := n.InputView(0)
	var peak dspgraph.Sample
	for _, v := range in {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	c.leftPeak, c.rightPeak = peak, peak
}
func (dupSink) Release(*dspgraph.Node) {}

func main() {
	sampleRate := flag.Int("rate", 44100, "sample rate in Hz")
	blockSize := flag.Int("block", 256, "block size in frames")
	ticks := flag.Int("ticks", 100, "number of ticks to run")
	gain := flag.Float64("gain", 0.5, "linear gain applied between noise and sink")
	seed := flag.Int64("seed", 12345, "noise generator seed")
	flag.Parse()

	g := dspgraph.NewGraph()
	noise := dspgraph.NewNode(&noiseCallback{rng: rand.New(rand.NewSource(*seed))})
	gainNode := dspgraph.NewNode(&gainCallback{gain: dspgraph.Sample(*gain)})
	sink := &dupSink{}
	sinkNode := dspgraph.NewNode(sink)

	for _, n := range []*dspgraph.Node{noise, gainNode, sinkNode} {
		if err := g.AddNode(n); err != nil {
			fmt.Fprintln(os.Stderr, "add node:", err)
			os.Exit(1)
		}
	}
	if err := g.AddLink(dspgraph.NewLink(noise, 0, gainNode, 0)); err != nil {
		fmt.Fprintln(os.Stderr, "add link:", err)
		os.Exit(1)
	}
	if err := g.AddLink(dspgraph.NewLink(gainNode, 0, sinkNode, 0)); err != nil {
		fmt.Fprintln(os.Stderr, "add link:", err)
		os.Exit(1)
	}

	drv := driver.New(g)
	if err := drv.Compile(*sampleRate, *blockSize); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for i := 0; i < *ticks; i++ {
		if err := drv.Tick(*sampleRate, *blockSize); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if err := drv.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("ran %d ticks at %dHz/%d frames, final peak L=%.4f R=%.4f\n",
		*ticks, *sampleRate, *blockSize, sink.leftPeak, sink.rightPeak)
}
