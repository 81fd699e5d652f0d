//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"hashlife/internal/app"
	"hashlife/internal/core"
	_ "hashlife/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Lookup(cfg.Sim)
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.Names())
	}

	sim := factory(cfg.SimConfig())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.TPS, cfg.Seed)

	ebiten.SetWindowTitle("hashlife - " + sim.Name())
	ebiten.SetWindowSize(game.Layout(0, 0))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
