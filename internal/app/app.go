//go:build ebiten

package app

import (
	"image/color"
	"time"

	"hashlife/internal/core"
	"hashlife/internal/render"
	"hashlife/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 200

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	pacer   *core.FixedStep
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	showHUD  bool
	seed     int64
}

// New constructs a Game for the provided simulation. Steps are paced at tps
// independently of the frame rate.
func New(sim core.Sim, scale, tps int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		pacer:    core.NewFixedStep(tps),
		hud:      ui.NewHUD(hudWidth),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
		showHUD:  true,
		seed:     seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.pacer.SetRate(g.pacer.Rate() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.pacer.SetRate(max(g.pacer.Rate()/2, 1))
	}

	if g.tickOnce || (!g.paused && g.pacer.ShouldStep()) {
		g.sim.Step()
		g.tickOnce = false
	}
	g.hud.Update(ui.StatusLines(g.sim, g.pacer.Rate(), g.paused))
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	if g.showHUD {
		size := g.sim.Size()
		g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	w := s.W * g.scale
	if g.showHUD {
		w += g.hud.Width()
	}
	return w, s.H * g.scale
}
