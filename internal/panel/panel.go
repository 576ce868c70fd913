// Package panel ties the transfer animation and the temperature alert to the
// two user actions, Fetch and Store, independent of any rendering library.
package panel

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/server-screen/internal/alert"
	"github.com/iburimskiy/server-screen/internal/config"
	"github.com/iburimskiy/server-screen/internal/geom"
	"github.com/iburimskiy/server-screen/internal/metrics"
	"github.com/iburimskiy/server-screen/internal/motion"
)

// StoreRunner runs the external store process.
type StoreRunner interface {
	Run(ctx context.Context) error
}

// Options configures a Panel. Layout, Speed and Evaluator are required.
// Speed is the step in pixels per tick and applies to both axes.
type Options struct {
	Layout        Layout
	Speed         int
	IndicatorSize int
	Evaluator     *alert.Evaluator
	// Notifier presents alerts; defaults to logging them.
	Notifier alert.Notifier
	Store    StoreRunner
	Metrics  *metrics.Collector
	Logger   logrus.FieldLogger
}

// Panel owns the transfer state. Fetch and Tick must be called from the same
// loop; Store may be called from any goroutine.
type Panel struct {
	layout    Layout
	size      int
	motion    *motion.Controller
	monitor   motion.Monitor
	evaluator *alert.Evaluator
	notifier  alert.Notifier
	store     StoreRunner
	metrics   *metrics.Collector
	logger    logrus.FieldLogger

	transferID   uuid.UUID
	lastDecision alert.Decision
	fetches      int
}

// New builds a Panel from opts.
func New(opts Options) *Panel {
	if opts.IndicatorSize <= 0 {
		opts.IndicatorSize = config.IndicatorSize
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Notifier == nil {
		opts.Notifier = alert.Log{Logger: opts.Logger}
	}
	return &Panel{
		layout:    opts.Layout,
		size:      opts.IndicatorSize,
		motion:    motion.NewController(geom.Pt(opts.Speed, opts.Speed)),
		monitor:   motion.NewMonitor(opts.Layout.Device, opts.IndicatorSize, opts.IndicatorSize),
		evaluator: opts.Evaluator,
		notifier:  opts.Notifier,
		store:     opts.Store,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}
}

// Fetch starts a transfer from the server anchor to the device anchor and
// evaluates one temperature reading. A transfer already in flight is
// replaced. On an alert the notifier runs before Fetch returns; with a modal
// notifier this blocks the caller's loop until the user acknowledges.
// The returned error only reports a failure to present the alert.
func (p *Panel) Fetch() (alert.Decision, error) {
	src, dst := p.layout.Source(), p.layout.Destination()

	if p.motion.Start(src, dst) {
		p.metrics.IncFinished("restarted")
		p.logger.WithField("transfer_id", p.transferID).Info("transfer restarted by new fetch")
	}
	p.transferID = uuid.New()
	p.fetches++
	p.metrics.IncStarted()
	p.logger.WithFields(logrus.Fields{
		"transfer_id": p.transferID,
		"from":        src,
		"to":          dst,
	}).Info("transfer started")

	d := p.evaluator.Evaluate()
	p.lastDecision = d
	p.metrics.ObserveReading(d.Value, d.IsAlert())
	if !d.IsAlert() {
		p.logger.WithField("value", d.Value).Debug("temperature normal")
		return d, nil
	}

	p.logger.WithFields(logrus.Fields{
		"value":     d.Value,
		"threshold": p.evaluator.Threshold(),
	}).Warn("high temperature")
	if err := p.notifier.Notify(d); err != nil {
		return d, fmt.Errorf("present alert: %w", err)
	}
	return d, nil
}

// Tick advances the transfer by one tick, finishing it early if the indicator
// overlaps the device panel.
func (p *Panel) Tick() motion.Step {
	step := p.monitor.Check(p.motion, p.motion.Tick())
	switch step.Phase {
	case motion.Moving:
		p.logger.WithFields(logrus.Fields{
			"transfer_id": p.transferID,
			"pos":         step.Position,
		}).Trace("tick")
	case motion.Finished:
		p.metrics.IncFinished(step.Reason.String())
		p.logger.WithFields(logrus.Fields{
			"transfer_id": p.transferID,
			"reason":      step.Reason,
			"ticks":       step.Ticks,
			"pos":         step.Position,
		}).Info("transfer finished")
	}
	return step
}

// Store runs the external store process. Its failure is logged and returned
// but leaves transfer and alert state untouched.
func (p *Panel) Store(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	err := p.store.Run(ctx)
	p.metrics.IncStore(err)
	if err != nil {
		p.logger.WithError(err).Error("store failed")
		return err
	}
	p.logger.Info("store finished")
	return nil
}

// Indicator returns the indicator's bounds and whether it should be drawn.
func (p *Panel) Indicator() (geom.Rect, bool) {
	return geom.RectAt(p.motion.Position(), p.size, p.size), p.motion.Visible()
}

// Moving reports whether a transfer is in flight.
func (p *Panel) Moving() bool {
	return p.motion.State().Phase == motion.Moving
}

// State returns the current transfer state.
func (p *Panel) State() motion.TransferState {
	return p.motion.State()
}

// Speed returns the indicator's per-axis step.
func (p *Panel) Speed() geom.Point {
	return p.motion.Speed()
}

// Layout returns the panel geometry.
func (p *Panel) Layout() Layout {
	return p.layout
}

// LastDecision returns the decision of the most recent Fetch and whether a
// Fetch has happened.
func (p *Panel) LastDecision() (alert.Decision, bool) {
	return p.lastDecision, p.fetches > 0
}

// TransferID identifies the most recent transfer.
func (p *Panel) TransferID() uuid.UUID {
	return p.transferID
}
