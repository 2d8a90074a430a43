// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package driver is a thin stand-in for an audio device manager: driver
// enumeration, device open, interleave/deinterleave, and the realtime
// callback thread are all out of scope. It wraps a compiled dspgraph.Graph
// and gives it a place to log lifecycle events — something the graph's
// own Tick path must never do, since Perform is required to be
// realtime-safe.
package driver

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"dspgraph.dev/dspgraph"
)

// Driver drives one compiled Graph one block at a time, logging
// compile/stop lifecycle events and tick-deadline misses. It passes no
// sample data of its own to the graph.
type Driver struct {
	graph *dspgraph.Graph
	log   zerolog.Logger
}

// New wraps graph with a Driver that logs to os.Stderr.
func New(graph *dspgraph.Graph) *Driver {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "dspgraph-driver").Logger()
	return &Driver{graph: graph, log: log}
}

// Compile compiles the wrapped graph and logs the outcome.
func (d *Driver) Compile(sampleRate, blockSize int) error {
	d.log.Debug().Int("sample_rate", sampleRate).Int("block_size", blockSize).Msg("compiling graph")
	if err := d.graph.Compile(sampleRate, blockSize); err != nil {
		d.log.Error().Err(err).Msg("compile failed")
		return fmt.Errorf("driver: compile: %w", err)
	}
	d.log.Info().Msg("graph compiled")
	return nil
}

// Tick runs one block through the graph, warning (not failing) if the
// deadline implied by blockSize/sampleRate was missed. The deadline check
// happens here, outside the graph's own Tick, so the realtime path stays
// allocation- and I/O-free.
func (d *Driver) Tick(sampleRate, blockSize int) error {
	deadline := time.Duration(blockSize) * time.Second / time.Duration(sampleRate)
	start := time.Now()
	err := d.graph.Tick()
	if err != nil {
		d.log.Error().Err(err).Msg("tick failed")
		return fmt.Errorf("driver: tick: %w", err)
	}
	if elapsed := time.Since(start); elapsed > deadline {
		d.log.Warn().Dur("elapsed", elapsed).Dur("deadline", deadline).Msg("tick missed its deadline")
	}
	return nil
}

// Stop stops the wrapped graph and logs the event.
func (d *Driver) Stop() error {
	if err := d.graph.Stop(); err != nil {
		return fmt.Errorf("driver: stop: %w", err)
	}
	d.log.Info().Msg("graph stopped")
	return nil
}
