// Package alert decides whether a sampled temperature reading warrants a
// high temperature alert, and presents alerts to the user.
package alert

import (
	"fmt"
	"math/rand"
)

const (
	// DefaultThreshold is the reading above which an alert is raised.
	DefaultThreshold = 90.0
	// DefaultMin and DefaultMax bound the simulated sensor.
	DefaultMin = 20.0
	DefaultMax = 100.0

	// Title is the alert dialog title.
	Title = "High Temperature Alert"
)

// Sampler produces one reading per call.
type Sampler interface {
	Sample() float64
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func() float64

func (f SamplerFunc) Sample() float64 { return f() }

// Uniform draws readings uniformly from [Min, Max]. It is not safe for
// concurrent use.
type Uniform struct {
	Min, Max float64
	rng      *rand.Rand
}

// NewUniform returns a Uniform sampler seeded with seed, so equal seeds give
// equal sequences.
func NewUniform(min, max float64, seed int64) *Uniform {
	return &Uniform{Min: min, Max: max, rng: rand.New(rand.NewSource(seed))}
}

func (u *Uniform) Sample() float64 {
	return u.Min + u.rng.Float64()*(u.Max-u.Min)
}

// Sequence replays fixed readings in order, repeating the last one once
// exhausted. An empty Sequence returns zero.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a sampler that yields values in order.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Sample() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

// Level is the outcome class of an evaluation.
type Level int

const (
	Normal Level = iota
	Alert
)

func (l Level) String() string {
	if l == Alert {
		return "alert"
	}
	return "normal"
}

// Decision is the result of one evaluation. Value is the sampled reading and
// is carried for both levels.
type Decision struct {
	Level Level
	Value float64
}

// IsAlert reports whether the decision is an alert.
func (d Decision) IsAlert() bool {
	return d.Level == Alert
}

// Message is the dialog body for an alert decision.
func (d Decision) Message() string {
	return fmt.Sprintf("Warning: High temperature detected! Current temperature: %.2f°C", d.Value)
}

// Evaluator compares one sample per call against a fixed threshold. It keeps
// no memory of previous readings.
type Evaluator struct {
	sampler   Sampler
	threshold float64
}

// NewEvaluator returns an evaluator drawing from sampler.
func NewEvaluator(sampler Sampler, threshold float64) *Evaluator {
	return &Evaluator{sampler: sampler, threshold: threshold}
}

// Evaluate samples once and returns Alert iff the reading exceeds the threshold.
func (e *Evaluator) Evaluate() Decision {
	v := e.sampler.Sample()
	if v > e.threshold {
		return Decision{Level: Alert, Value: v}
	}
	return Decision{Level: Normal, Value: v}
}

// Threshold returns the configured threshold.
func (e *Evaluator) Threshold() float64 {
	return e.threshold
}
