package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pachisi/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func NewServer(cfg server.Config) *Server {
	s := &Server{GameServer: server.NewGameServer(cfg)}
	s.routes()
	return s
}

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	cfg.SetupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := NewServer(cfg)
	go s.GameServer.Loop(ctx)

	httpServer := &http.Server{Addr: cfg.Addr, Handler: s.router}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdown); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithFields(log.Fields{"addr": cfg.Addr, "seats": cfg.Seats}).Info("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("listen")
	}
}
