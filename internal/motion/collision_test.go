package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/server-screen/internal/geom"
)

func tickWith(c *Controller, m Monitor) Step {
	return m.Check(c, c.Tick())
}

func TestCollisionFinishesBeforeArrival(t *testing.T) {
	m := NewMonitor(geom.NewRect(90, 90, 50, 50), 50, 50)
	c := NewController(defaultSpeed)
	c.Start(geom.Pt(95, 100), geom.Pt(95, 0))

	step := tickWith(c, m)
	assert.Equal(t, Finished, step.Phase)
	assert.Equal(t, ReasonCollided, step.Reason)
	assert.Equal(t, 1, step.Ticks)
	assert.Equal(t, geom.Pt(95, 95), step.Position)
	assert.Equal(t, geom.NewRect(95, 95, 50, 50), m.Bounds(step.Position))
	assert.False(t, step.Visible)
	assert.Equal(t, Idle, c.State().Phase)
}

func TestCollisionOnApproach(t *testing.T) {
	// Destination spans x in [90,140); the indicator's left edge enters it at x=135.
	m := NewMonitor(geom.NewRect(90, 90, 50, 50), 50, 50)
	c := NewController(defaultSpeed)
	c.Start(geom.Pt(200, 95), geom.Pt(0, 95))

	var step Step
	for i := 1; i <= 12; i++ {
		step = tickWith(c, m)
		require.Equal(t, Moving, step.Phase, "tick %d", i)
	}
	require.Equal(t, geom.Pt(140, 95), step.Position)

	step = tickWith(c, m)
	assert.Equal(t, Finished, step.Phase)
	assert.Equal(t, ReasonCollided, step.Reason)
	assert.Equal(t, 13, step.Ticks)
	assert.Equal(t, geom.Pt(135, 95), step.Position)

	// Remains finished.
	assert.Equal(t, Idle, tickWith(c, m).Phase)
}

func TestArrivalWinsWhenBothFireOnSameTick(t *testing.T) {
	m := NewMonitor(geom.NewRect(0, 0, 10, 10), 5, 5)
	c := NewController(defaultSpeed)
	c.Start(geom.Pt(20, 0), geom.Pt(5, 0))

	var step Step
	for i := 0; i < 10 && step.Phase != Finished; i++ {
		step = tickWith(c, m)
	}
	assert.Equal(t, Finished, step.Phase)
	assert.Equal(t, ReasonArrived, step.Reason)
	assert.Equal(t, geom.Pt(5, 0), step.Position)
	assert.Equal(t, 3, step.Ticks)
}

func TestMonitorWithoutOverlapNeverFires(t *testing.T) {
	m := NewMonitor(geom.NewRect(1000, 1000, 10, 10), 50, 50)
	c := NewController(defaultSpeed)
	c.Start(geom.Pt(500, 100), geom.Pt(100, 100))

	var step Step
	for step.Phase != Finished {
		step = tickWith(c, m)
	}
	assert.Equal(t, ReasonArrived, step.Reason)
	assert.Equal(t, 80, step.Ticks)
}

func TestZeroMonitorNeverCollides(t *testing.T) {
	var m Monitor
	assert.False(t, m.Collides(geom.Pt(0, 0)))
}
