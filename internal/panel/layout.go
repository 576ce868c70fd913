package panel

import (
	"github.com/iburimskiy/server-screen/internal/config"
	"github.com/iburimskiy/server-screen/internal/geom"
)

// Layout is the fixed geometry of the panel window.
type Layout struct {
	Width, Height int

	// Device is the compass panel on the left and the transfer destination.
	Device geom.Rect
	// Server is the panel on the right where transfers start.
	Server geom.Rect

	FetchButton geom.Rect
	StoreButton geom.Rect
}

// NewLayout splits a width by height window into device panel, spacer and
// server panel at 30/40/30 of the inner width, each panel half the inner
// height, with the two buttons stacked in the bottom-left corner.
func NewLayout(width, height int) Layout {
	m := config.PanelMargin
	innerW := width - 2*m
	innerH := height - 2*m

	panelW := int(float64(innerW) * config.PanelWidthRatio)
	panelH := int(float64(innerH) * config.PanelHeightRatio)
	serverX := m + int(float64(innerW)*(config.PanelWidthRatio+config.SpacerWidthRatio))

	storeY := height - m - config.ButtonHeight
	fetchY := storeY - config.ButtonGap - config.ButtonHeight

	return Layout{
		Width:       width,
		Height:      height,
		Device:      geom.NewRect(m, m, panelW, panelH),
		Server:      geom.NewRect(serverX, m, panelW, panelH),
		FetchButton: geom.NewRect(m, fetchY, config.ButtonWidth, config.ButtonHeight),
		StoreButton: geom.NewRect(m, storeY, config.ButtonWidth, config.ButtonHeight),
	}
}

// Source is the transfer start anchor: the server panel's top-right corner.
func (l Layout) Source() geom.Point {
	return l.Server.TopRight()
}

// Destination is the transfer end anchor: the device panel's top-left corner.
func (l Layout) Destination() geom.Point {
	return l.Device.TopLeft()
}
