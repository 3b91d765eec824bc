package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pachisi/game"
	"github.com/zucenko/pachisi/model"
)

// Config controls the match server.
type Config struct {
	Addr           string        `env:"PACHISI_ADDR"            envDefault:":8080"`
	Port           string        `env:"PORT"`
	Seats          int           `env:"PACHISI_SEATS"           envDefault:"4"`
	FillWithBots   bool          `env:"PACHISI_FILL_WITH_BOTS"  envDefault:"true"`
	BotStrategy    string        `env:"PACHISI_BOT_STRATEGY"    envDefault:"tree"`
	LobbyTimeout   time.Duration `env:"PACHISI_LOBBY_TIMEOUT"   envDefault:"30s"`
	TurnTimeout    time.Duration `env:"PACHISI_TURN_TIMEOUT"    envDefault:"30s"`
	ConnectTimeout time.Duration `env:"PACHISI_CONNECT_TIMEOUT" envDefault:"200ms"`
	LogLevel       string        `env:"PACHISI_LOG_LEVEL"       envDefault:"info"`
	LogFormat      string        `env:"PACHISI_LOG_FORMAT"      envDefault:"text"`
	Seed           int64         `env:"PACHISI_SEED"`
}

// LoadConfig reads the environment and checks the result. A bare PORT, as
// set by most hosting platforms, wins over the default listen address.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port != "" && cfg.Addr == ":8080" {
		cfg.Addr = ":" + cfg.Port
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Seats < 2 || c.Seats > model.NumColors {
		return fmt.Errorf("PACHISI_SEATS must be between 2 and %d, got %d", model.NumColors, c.Seats)
	}
	if _, ok := game.NewPolicy(c.BotStrategy, ""); !ok {
		return fmt.Errorf("unknown PACHISI_BOT_STRATEGY %q", c.BotStrategy)
	}
	if c.TurnTimeout <= 0 || c.ConnectTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("PACHISI_LOG_LEVEL: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("PACHISI_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// SetupLogging applies the level and format to the logrus standard logger.
func (c Config) SetupLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Roller builds the dice for the given session. A set seed is offset by the
// session id so concurrent matches roll differently; a zero seed draws a
// fresh one.
func (c Config) Roller(session int) game.Roller {
	if c.Seed != 0 {
		return game.NewRandomRoller(c.Seed + int64(session))
	}
	seed, err := game.NewSeed()
	if err != nil {
		log.WithError(err).Warn("falling back to clock seed")
		seed = time.Now().UnixNano()
	}
	return game.NewRandomRoller(seed)
}
