package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Game shows a Display in an Ebitengine window.
//
// Step runs once per tick from Update; it is where the host draws with its
// canvas.Context and calls Render. A non-nil error ends the game.
type Game struct {
	display *Display
	step    func() error
	ticks   int
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates a game for d driven by step.
func NewGame(d *Display, step func() error) *Game {
	return &Game{display: d, step: step}
}

// Update runs the step function.
func (g *Game) Update() error {
	g.ticks++
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// Draw copies the display target to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.display.Image(), nil)
}

// Layout keeps the logical screen at the framebuffer size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.display.FramebufferSize()
}

// Ticks returns the number of Update calls.
func (g *Game) Ticks() int {
	return g.ticks
}

// Run opens a window for d and blocks until it closes or step fails.
func Run(d *Display, title string, step func() error) error {
	w, h := d.FramebufferSize()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(60)
	return ebiten.RunGame(NewGame(d, step))
}
