package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pachisi/client"
	"github.com/zucenko/pachisi/game"
)

type config struct {
	ServerURL string `env:"PACHISI_SERVER_URL"  envDefault:"ws://localhost:8080/play"`
	Name      string `env:"PACHISI_PLAYER_NAME" envDefault:"bot"`
	Strategy  string `env:"PACHISI_STRATEGY"    envDefault:"tree"`
	LogLevel  string `env:"PACHISI_LOG_LEVEL"   envDefault:"info"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.WithError(err).Fatal("parse env")
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	policy, ok := game.NewPolicy(cfg.Strategy, cfg.Name)
	if !ok {
		log.WithField("strategy", cfg.Strategy).Fatal("unknown strategy, want first, last or tree")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	over, err := client.New(cfg.ServerURL, policy).Play(ctx)
	if err != nil {
		log.WithError(err).Fatal("play")
	}
	if over.Winner != nil {
		log.WithField("winner", *over.Winner).Info("done")
	}
}
