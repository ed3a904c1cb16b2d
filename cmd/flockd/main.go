// Command flockd ticks a boids flock on the server and streams every frame
// to websocket viewers at /frames. The parameter snapshot is served at
// /params.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antflock/internal/app"
	"antflock/internal/sims/boids"
	"antflock/internal/stream"

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

	if err := stream.ValidateTPS(cfg.TPS); err != nil {
		log.Fatal(err)
	}

	simCfg := boids.FromMap(cfg.Overrides)
	simCfg.Seed = cfg.Seed
	sim, err := boids.NewWithConfig(simCfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := stream.NewHub(sim)
	srv := &http.Server{Addr: cfg.Addr, Handler: hub.Routes()}

	go func() {
		if err := hub.Run(ctx, cfg.TPS); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("frame loop")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(log.Fields{"addr": cfg.Addr, "boids": simCfg.Count, "tps": cfg.TPS}).Info("flockd listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
