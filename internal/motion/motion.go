// Package motion drives the transfer indicator from a source anchor to a
// destination anchor, one tick at a time.
//
// The state is a plain value (TransferState) advanced by the pure Advance
// function. Controller owns one such value and adds the visibility rules the
// renderer reads; it never touches UI objects itself.
package motion

import (
	"github.com/iburimskiy/server-screen/internal/geom"
)

// Phase is the coarse state of a transfer.
type Phase int

const (
	Idle Phase = iota
	Moving
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Reason records why a transfer finished.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonArrived: distance travelled reached the start-end distance.
	ReasonArrived
	// ReasonCollided: indicator bounds overlapped the destination region.
	ReasonCollided
)

func (r Reason) String() string {
	switch r {
	case ReasonArrived:
		return "arrived"
	case ReasonCollided:
		return "collided"
	default:
		return "none"
	}
}

// TransferState is the full state of one transfer. While Moving, Current is
// start plus a whole number of identical steps.
type TransferState struct {
	Phase   Phase
	Start   geom.Point
	End     geom.Point
	Current geom.Point
	Ticks   int
	Reason  Reason
}

// NewTransfer returns a Moving state positioned at start.
func NewTransfer(start, end geom.Point) TransferState {
	return TransferState{
		Phase:   Moving,
		Start:   start,
		End:     end,
		Current: start,
	}
}

// StepFor returns the per-tick displacement for a move from start to end: the
// unit direction scaled by speed on each axis and truncated toward zero.
// A zero-length move has a zero step.
func StepFor(start, end, speed geom.Point) geom.Point {
	dir := end.Sub(start)
	total := dir.Length()
	if total == 0 {
		return geom.Point{}
	}
	ux := float64(dir.X) / total
	uy := float64(dir.Y) / total
	return geom.Pt(int(float64(speed.X)*ux), int(float64(speed.Y)*uy))
}

// Advance performs one tick on s and returns the new state. States that are
// not Moving are returned unchanged.
func Advance(s TransferState, speed geom.Point) TransferState {
	if s.Phase != Moving {
		return s
	}
	s.Ticks++

	total := geom.Distance(s.Start, s.End)
	if total == 0 {
		return finish(s, ReasonArrived)
	}

	s.Current = s.Current.Add(StepFor(s.Start, s.End, speed))
	if geom.Distance(s.Start, s.Current) >= total {
		return finish(s, ReasonArrived)
	}
	return s
}

func finish(s TransferState, reason Reason) TransferState {
	if reason == ReasonArrived {
		s.Current = s.End
	}
	s.Phase = Finished
	s.Reason = reason
	return s
}

// Step is what the renderer needs after a tick.
type Step struct {
	Phase    Phase
	Position geom.Point
	Visible  bool
	Reason   Reason
	Ticks    int
}

// Controller owns the transfer state for a single moving indicator.
// It is not safe for concurrent use; it is meant to be driven from one loop.
type Controller struct {
	speed   geom.Point
	state   TransferState
	visible bool
}

// NewController returns an idle controller moving speed units per axis per tick.
func NewController(speed geom.Point) *Controller {
	return &Controller{speed: speed}
}

// Start begins a transfer from start to end and shows the indicator at start.
// A transfer already in progress is discarded; the return value reports
// whether that happened.
func (c *Controller) Start(start, end geom.Point) (interrupted bool) {
	interrupted = c.state.Phase == Moving
	c.state = NewTransfer(start, end)
	c.visible = true
	return interrupted
}

// Tick advances the transfer by one tick. When the transfer completes the
// returned Step has Phase Finished and the controller itself returns to Idle,
// so further ticks are no-ops until the next Start.
func (c *Controller) Tick() Step {
	if c.state.Phase != Moving {
		return c.snapshot()
	}
	c.state = Advance(c.state, c.speed)
	return c.settle()
}

// Finish ends a moving transfer early for reason. It is a no-op when nothing
// is moving.
func (c *Controller) Finish(reason Reason) Step {
	if c.state.Phase != Moving {
		return c.snapshot()
	}
	c.state = finish(c.state, reason)
	return c.settle()
}

func (c *Controller) settle() Step {
	if c.state.Phase != Finished {
		return c.snapshot()
	}
	step := c.snapshot()
	step.Visible = false
	c.visible = false
	c.state.Phase = Idle
	return step
}

func (c *Controller) snapshot() Step {
	return Step{
		Phase:    c.state.Phase,
		Position: c.state.Current,
		Visible:  c.visible,
		Reason:   c.state.Reason,
		Ticks:    c.state.Ticks,
	}
}

// State returns a copy of the current transfer state.
func (c *Controller) State() TransferState {
	return c.state
}

// Visible reports whether the indicator should be drawn.
func (c *Controller) Visible() bool {
	return c.visible
}

// Position returns the indicator's current position.
func (c *Controller) Position() geom.Point {
	return c.state.Current
}

// Speed returns the per-axis speed.
func (c *Controller) Speed() geom.Point {
	return c.speed
}
