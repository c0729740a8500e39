// Package wave runs the stadium wave: a crest that travels column by column through the crowd.
package wave

import (
	"time"

	"stadium/internal/roster"
)

// Options tunes the wave.
type Options struct {
	// Tick is how much time must pass (strictly more) before the crest moves one column.
	Tick time.Duration
	// Raise lifts the crest column; Lower then drops the column behind it.
	Raise float32
	Lower float32
}

// DefaultOptions is 35ms per column, up 7, down 3.
func DefaultOptions() Options {
	return Options{Tick: 35 * time.Millisecond, Raise: 7, Lower: 3}
}

// State is a snapshot of the sequencer.
type State struct {
	Active  bool
	Column  int
	Elapsed time.Duration
}

// Sequencer moves the crest. It is Idle until Trigger and returns to Idle once the crest has
// passed the last column, leaving everybody at rest. Not safe for concurrent use.
type Sequencer struct {
	grid    *roster.Grid
	opts    Options
	active  bool
	column  int
	elapsed time.Duration

	// OnStart and OnFinish are called when a wave begins and ends.
	OnStart  func()
	OnFinish func()
}

// New returns an idle sequencer over grid. Zero option fields take the defaults.
func New(grid *roster.Grid, opts Options) *Sequencer {
	def := DefaultOptions()
	if opts.Tick <= 0 {
		opts.Tick = def.Tick
	}
	if opts.Raise == 0 {
		opts.Raise = def.Raise
	}
	if opts.Lower == 0 {
		opts.Lower = def.Lower
	}
	return &Sequencer{grid: grid, opts: opts}
}

// Trigger starts a wave at column 0. It reports whether a wave was started; a running wave or
// an empty crowd is left alone.
func (s *Sequencer) Trigger() bool {
	if s.active || s.grid.Columns() == 0 {
		return false
	}
	s.active = true
	s.column = 0
	s.elapsed = 0
	if s.OnStart != nil {
		s.OnStart()
	}
	return true
}

// Active reports whether a wave is running.
func (s *Sequencer) Active() bool { return s.active }

// Column is the next column the crest will reach.
func (s *Sequencer) Column() int { return s.column }

// State returns a snapshot.
func (s *Sequencer) State() State {
	return State{Active: s.active, Column: s.column, Elapsed: s.elapsed}
}

// Advance adds dt to the accumulated time and steps the wave once if it is running and the
// accumulated time exceeds the tick. At most one step happens per call.
func (s *Sequencer) Advance(dt time.Duration) {
	s.elapsed += dt
	if !s.active || s.elapsed <= s.opts.Tick {
		return
	}
	s.Step()
	s.elapsed = 0
}

// Step moves the crest one column regardless of time.
func (s *Sequencer) Step() {
	if !s.active {
		return
	}
	c := s.column
	s.each(c, func(p *roster.Spectator) { p.Raise(s.opts.Raise) })
	s.each(c-1, func(p *roster.Spectator) { p.Lower(s.opts.Lower) })
	s.each(c-2, (*roster.Spectator).Settle)
	s.column++

	if s.column >= s.grid.Columns() {
		s.finish()
	}
}

// Stop ends a running wave and puts everybody back at rest.
func (s *Sequencer) Stop() {
	if s.active {
		s.finish()
	}
}

func (s *Sequencer) finish() {
	for col := 0; col < s.grid.Columns(); col++ {
		s.each(col, (*roster.Spectator).Settle)
	}
	s.active = false
	s.column = 0
	if s.OnFinish != nil {
		s.OnFinish()
	}
}

func (s *Sequencer) each(col int, fn func(*roster.Spectator)) {
	for t := 0; t < s.grid.Tiers(); t++ {
		if p, ok := s.grid.At(t, col); ok {
			fn(p)
		}
	}
}
