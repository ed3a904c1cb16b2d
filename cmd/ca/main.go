//go:build ebiten

package main

import (
	"errors"
	"flag"

	"antflock/internal/app"
	_ "antflock/internal/sims/ant"
	_ "antflock/internal/sims/boids"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := app.NewConfig()
	cfg.LoadEnv()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := app.SetupLogging(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	sim, err := cfg.NewSim()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg.Scale, cfg.Seed, cfg.HUD)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(windowTitle(sim.Name()))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
