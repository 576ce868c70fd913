// Package game renders the panel with ebiten and feeds user input to it.
// All transfer and alert state lives in internal/panel; this package only
// reads it back each frame.
package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/server-screen/internal/config"
	"github.com/iburimskiy/server-screen/internal/geom"
	"github.com/iburimskiy/server-screen/internal/motion"
	"github.com/iburimskiy/server-screen/internal/panel"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	deviceColor     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	serverColor     = color.RGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 255}
	serverBorder    = color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 255}
	indicatorColor  = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	needleColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

type button struct {
	label   string
	rect    geom.Rect
	hovered bool
	pressed bool
}

// update reports whether the button was clicked this frame.
func (b *button) update(mouse geom.Point) bool {
	b.hovered = b.rect.Contains(mouse)
	if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.pressed = true
	}
	clicked := false
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	return clicked
}

// Game implements ebiten.Game on top of a panel.Panel.
type Game struct {
	ctx    context.Context
	panel  *panel.Panel
	cfg    config.Config
	logger logrus.FieldLogger

	fetch button
	store button

	storing   bool
	storeDone chan error

	// decorative compass needle, degrees
	angle int
	ticks int

	prevKey map[ebiten.Key]bool
	lastErr error
}

// New returns a Game drawing p.
func New(ctx context.Context, p *panel.Panel, cfg config.Config, logger logrus.FieldLogger) *Game {
	l := p.Layout()
	return &Game{
		ctx:       ctx,
		panel:     p,
		cfg:       cfg,
		logger:    logger,
		fetch:     button{label: "Fetch Data", rect: l.FetchButton},
		store:     button{label: "Store Data", rect: l.StoreButton},
		storeDone: make(chan error, 1),
		prevKey:   map[ebiten.Key]bool{},
	}
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	l := g.panel.Layout()
	ebiten.SetWindowSize(l.Width, l.Height)
	ebiten.SetWindowTitle("Server Screen - F: fetch, S: store, Esc/Q: quit")
	ebiten.SetTPS(g.cfg.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	select {
	case err := <-g.storeDone:
		g.storing = false
		g.lastErr = err
	default:
	}

	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}

	mx, my := ebiten.CursorPosition()
	mouse := geom.Pt(mx, my)

	// Evaluate every input each frame so prevKey stays current.
	fetchClicked, fetchKey := g.fetch.update(mouse), justPressed(ebiten.KeyF)
	storeClicked, storeKey := g.store.update(mouse), justPressed(ebiten.KeyS)
	escKey, quitKey := justPressed(ebiten.KeyEscape), justPressed(ebiten.KeyQ)

	if fetchClicked || fetchKey {
		g.onFetch()
	}
	if storeClicked || storeKey {
		g.onStore()
	}
	if escKey || quitKey {
		return ebiten.Termination
	}

	g.panel.Tick()
	g.angle = (g.angle + config.NeedleStep) % 360
	g.ticks++
	return nil
}

// onFetch runs on the game loop. An alert dialog blocks here, so the
// animation holds still until it is dismissed.
func (g *Game) onFetch() {
	if _, err := g.panel.Fetch(); err != nil {
		g.logger.WithError(err).Warn("fetch alert could not be shown")
		g.lastErr = err
		return
	}
	g.lastErr = nil
}

// onStore runs the store command off the game loop; the result comes back
// through storeDone.
func (g *Game) onStore() {
	if g.storing {
		return
	}
	g.storing = true
	go func() {
		g.storeDone <- g.panel.Store(g.ctx)
	}()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	l := g.panel.Layout()
	g.drawDevice(screen, l.Device)
	g.drawServer(screen, l.Server)
	g.drawButton(screen, &g.fetch)
	g.drawButton(screen, &g.store)
	g.drawIndicator(screen)
	g.drawStatus(screen)
}

func (g *Game) drawDevice(screen *ebiten.Image, r geom.Rect) {
	fillRect(screen, r, deviceColor)
	inner := geom.NewRect(r.X+20, r.Y+20, r.W-40, r.H-40)
	strokeRect(screen, inner, 2, color.White)

	c := r.Center()
	cx, cy := float64(c.X), float64(c.Y)
	for i := 0; i < config.RoseSpokes; i++ {
		rad := float64(i) * (2 * math.Pi / config.RoseSpokes)
		x := cx + config.RoseRadius*math.Cos(rad)
		y := cy + config.RoseRadius*math.Sin(rad)
		vector.StrokeLine(screen, float32(cx), float32(cy), float32(x), float32(y), 1, color.White, false)
	}

	rad := float64(g.angle) * math.Pi / 180
	x1 := cx + config.RoseRadius*math.Cos(rad)
	y1 := cy + config.RoseRadius*math.Sin(rad)
	x2 := cx + (config.RoseRadius+config.NeedleLength)*math.Cos(rad)
	y2 := cy + (config.RoseRadius+config.NeedleLength)*math.Sin(rad)
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 3, needleColor, false)

	vector.DrawFilledCircle(screen, float32(r.X+60), float32(r.Y+60), 10, color.RGBA{G: 255, A: 255}, false)
	vector.DrawFilledCircle(screen, float32(r.Right()-60), float32(r.Y+60), 10, color.RGBA{R: 255, A: 255}, false)
}

func (g *Game) drawServer(screen *ebiten.Image, r geom.Rect) {
	fillRect(screen, r, serverColor)
	strokeRect(screen, r, 1, serverBorder)
	label := "Server"
	ebitenutil.DebugPrintAt(screen, label, r.X+(r.W-len(label)*6)/2, r.Y+10)
}

func (g *Game) drawButton(screen *ebiten.Image, b *button) {
	var bg color.Color
	switch {
	case b.pressed:
		bg = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case b.hovered:
		bg = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	default:
		bg = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
	fillRect(screen, b.rect, bg)
	strokeRect(screen, b.rect, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255})

	textWidth := len(b.label) * 6
	ebitenutil.DebugPrintAt(screen, b.label, b.rect.X+(b.rect.W-textWidth)/2, b.rect.Y+(b.rect.H-16)/2)
}

func (g *Game) drawIndicator(screen *ebiten.Image) {
	r, visible := g.panel.Indicator()
	if !visible {
		return
	}
	fillRect(screen, r, indicatorColor)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	l := g.panel.Layout()
	st := g.panel.State()

	status := fmt.Sprintf("Uptime %s | Transfer: %s", formatDuration(ticksToDuration(g.ticks, g.cfg.TPS)), st.Phase)
	if st.Phase == motion.Moving {
		status += fmt.Sprintf(" (%d ticks at %v px/tick)", st.Ticks, g.panel.Speed())
	} else if st.Reason != motion.ReasonNone {
		status += fmt.Sprintf(" (last %s after %d ticks)", st.Reason, st.Ticks)
	}
	if g.storing {
		status += " | Storing..."
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	x := l.FetchButton.Right() + 20
	ebitenutil.DebugPrintAt(screen, status, x, l.FetchButton.Y)

	if d, ok := g.panel.LastDecision(); ok {
		text := fmt.Sprintf("Temperature: %.2f (%s)", d.Value, d.Level)
		fillRect(screen, geom.NewRect(x, l.StoreButton.Y+4, 12, 12), readingColor(d.Value, g.cfg.SampleMin, g.cfg.SampleMax))
		ebitenutil.DebugPrintAt(screen, text, x+18, l.StoreButton.Y)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	l := g.panel.Layout()
	return l.Width, l.Height
}

func fillRect(dst *ebiten.Image, r geom.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func strokeRect(dst *ebiten.Image, r geom.Rect, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, clr, false)
}
