package alert

import (
	"errors"

	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"
)

// Notifier presents an alert decision. Implementations ignore Normal decisions.
type Notifier interface {
	Notify(d Decision) error
}

// Dialog shows a native modal warning and blocks until it is dismissed.
// Called from the game loop this pauses ticking while the dialog is open.
type Dialog struct {
	show func(text string, options ...zenity.Option) error
}

// NewDialog returns a Dialog backed by zenity.
func NewDialog() *Dialog {
	return &Dialog{show: zenity.Warning}
}

func (n *Dialog) Notify(d Decision) error {
	if !d.IsAlert() {
		return nil
	}
	err := n.show(d.Message(), zenity.Title(Title), zenity.OKLabel("OK"))
	if errors.Is(err, zenity.ErrCanceled) {
		// Closing the window acknowledges the alert too.
		return nil
	}
	return err
}

// Log writes alerts to a logrus logger. Used where no display is available.
type Log struct {
	Logger logrus.FieldLogger
}

func (n Log) Notify(d Decision) error {
	if !d.IsAlert() {
		return nil
	}
	logger := n.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithField("value", d.Value).Warn(d.Message())
	return nil
}

// Chain notifies each notifier in order and joins their errors.
type Chain []Notifier

func (c Chain) Notify(d Decision) error {
	var errs []error
	for _, n := range c {
		if n == nil {
			continue
		}
		if err := n.Notify(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
