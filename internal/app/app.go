//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"splitstep/internal/render"
	"splitstep/internal/sims/langevin"
	"splitstep/internal/ui"
)

// Game adapts a langevin simulation to the ebiten.Game interface. It steps
// the simulation on the game loop and scrolls one diagram row per generation.
type Game struct {
	sim     *langevin.Simulation
	opts    Options
	logger  *zap.Logger
	diagram *render.SpaceTime
	painter *render.SpaceTimePainter
	hud     *ui.HUD
	overlay *ui.Overlay

	snapshot []float64
	paused   bool
	tickOnce bool
	absorbed bool
}

// New constructs a Game for the provided simulation.
func New(sim *langevin.Simulation, opts Options, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.Normalize(sim.Lattice().Len())
	diagram := render.NewSpaceTime(opts.Columns, opts.Rows, opts.MaxDensity)
	g := &Game{
		sim:     sim,
		opts:    opts,
		logger:  logger,
		diagram: diagram,
		painter: render.NewSpaceTimePainter(diagram),
		overlay: ui.NewOverlay(opts.Rows),
	}
	g.hud = ui.NewHUD(opts.PanelWidth, ui.DefaultControls(), g.adjust)
	g.record()
	return g
}

// Reset restarts the run from its initial condition with the same seeds.
func (g *Game) Reset() {
	g.sim.Reset()
	g.diagram.Clear()
	g.overlay.Reset()
	g.absorbed = false
	g.tickOnce = false
	g.record()
}

// adjust rebuilds the simulation with one parameter changed.
func (g *Game) adjust(key string, value float64) bool {
	cfg := g.sim.Config().WithOverrides(map[string]string{key: formatValue(value)})
	sim, err := langevin.New(cfg, langevin.WithLogger(g.logger))
	if err != nil {
		g.logger.Warn("parameter rejected", zap.String("key", key), zap.Float64("value", value), zap.Error(err))
		return false
	}
	g.sim = sim
	g.logger.Info("parameter changed", zap.String("key", key), zap.Float64("value", value))
	g.Reset()
	return true
}

// Update handles per-frame logic and advances the simulation.
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
		g.Reset()
	}

	g.overlay.Update()
	w, _ := g.viewSize()
	g.hud.Update(g.sim.Config().Parameters(), w)

	if g.absorbed || (g.paused && !g.tickOnce) {
		return nil
	}
	steps := g.opts.StepsPerFrame
	if g.tickOnce {
		steps = 1
	}
	g.tickOnce = false
	for i := 0; i < steps; i++ {
		if err := g.sim.Step(); err != nil {
			return err
		}
		g.record()
		if g.absorbed {
			g.logger.Info("absorbing state reached", zap.Float64("time", g.sim.Time()))
			break
		}
	}
	return nil
}

func (g *Game) record() {
	g.snapshot = g.sim.Lattice().Snapshot(g.snapshot)
	g.diagram.Push(g.snapshot)
	density := g.sim.Density()
	g.absorbed = g.sim.Absorbed()
	g.overlay.Observe(ui.Status{
		Iteration: g.sim.Iteration(),
		Time:      g.sim.Time(),
		Density:   density,
		Paused:    g.paused,
		Absorbed:  g.absorbed,
	})
}

// Draw renders the diagram, overlay and parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.opts.Scale)
	w, h := g.viewSize()
	g.overlay.Draw(screen, w, h)
	g.hud.Draw(screen, w, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.WindowSize()
}

func (g *Game) viewSize() (int, int) {
	return g.opts.Columns * g.opts.Scale, g.opts.Rows * g.opts.Scale
}
