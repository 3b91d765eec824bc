// Package game runs Parcheesi matches on top of the model rules: it rolls
// the dice, asks each player's Policy for moves, and re-checks everything a
// policy proposes before it touches the board.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pachisi/model"
)

type seat struct {
	color   model.Color
	name    string
	policy  Policy
	ejected bool
}

// Game is one match. It is not safe for concurrent use: a single goroutine
// drives it through Start and Play.
type Game struct {
	board   model.Board
	roller  Roller
	seats   []*seat
	onEject func(model.Color, error)

	winner    model.Color
	hasWinner bool
}

type Option func(*Game)

// WithBoard starts the match from a given position instead of all nests.
func WithBoard(b model.Board) Option {
	return func(g *Game) {
		g.board = b
	}
}

func WithRoller(r Roller) Option {
	return func(g *Game) {
		g.roller = r
	}
}

// WithEjectHook is called after a player is removed from the match.
func WithEjectHook(f func(model.Color, error)) Option {
	return func(g *Game) {
		g.onEject = f
	}
}

func NewGame(options ...Option) *Game {
	g := &Game{board: model.NewBoard()}
	for _, o := range options {
		o(g)
	}
	if g.roller == nil {
		seed, err := NewSeed()
		if err != nil {
			log.WithError(err).Warn("falling back to clock seed")
			seed = time.Now().UnixNano()
		}
		g.roller = NewRandomRoller(seed)
	}
	return g
}

// Register seats a policy at the next free color.
func (g *Game) Register(p Policy) (model.Color, error) {
	if len(g.seats) == model.NumColors {
		return 0, ErrGameFull
	}
	c := model.Colors[len(g.seats)]
	g.seats = append(g.seats, &seat{color: c, policy: p})
	log.WithField("color", c).Info("player registered")
	return c, nil
}

// Start tells every player its color. A player that fails to answer is
// ejected before the first turn.
func (g *Game) Start(ctx context.Context) error {
	if len(g.seats) == 0 {
		return ErrNoPlayers
	}
	for _, s := range g.seats {
		name, err := s.policy.StartGame(ctx, s.color)
		if err != nil {
			g.eject(s, fmt.Errorf("start game: %w", err))
			continue
		}
		s.name = name
		log.WithFields(log.Fields{"color": s.color, "name": name}).Info("player ready")
	}
	return nil
}

// GiveTurn plays one full turn for color and commits the resulting board.
// On error the board is left as it was before the turn.
func (g *Game) GiveTurn(ctx context.Context, color model.Color, policy Policy, roller Roller) (model.Board, model.Dice, error) {
	result, err := PlayTurn(ctx, g.board, color, policy, roller)
	if err != nil {
		return g.board, result.Dice, err
	}
	g.board = result.Board
	if c, ok := g.board.Winner(); ok {
		g.winner, g.hasWinner = c, true
	}
	return g.board, result.Dice, nil
}

// Play rotates turns in seating order until someone wins, every player has
// been ejected, or ctx is done. Players that cheat or fail to answer are
// skipped from then on; their pawns stay where they are.
func (g *Game) Play(ctx context.Context) (model.Color, bool, error) {
	if len(g.seats) == 0 {
		return 0, false, ErrNoPlayers
	}
	for turn := 0; !g.hasWinner; turn++ {
		s := g.seats[turn%len(g.seats)]
		if s.ejected {
			if g.activeSeats() == 0 {
				return 0, false, ErrNoPlayers
			}
			continue
		}
		if _, _, err := g.GiveTurn(ctx, s.color, s.policy, g.roller); err != nil {
			if ctx.Err() != nil {
				return 0, false, ctx.Err()
			}
			g.eject(s, err)
			continue
		}
	}
	log.WithFields(log.Fields{"winner": g.winner, "board": g.board.String()}).Info("game over")
	return g.winner, true, nil
}

func (g *Game) activeSeats() int {
	n := 0
	for _, s := range g.seats {
		if !s.ejected {
			n++
		}
	}
	return n
}

func (g *Game) eject(s *seat, err error) {
	s.ejected = true
	entry := log.WithField("color", s.color).WithError(err)
	var v *Violation
	if errors.As(err, &v) {
		entry.Warn("player cheated")
	} else {
		entry.Warn("player dropped")
	}
	if g.onEject != nil {
		g.onEject(s.color, err)
	}
}

func (g *Game) Board() model.Board {
	return g.board
}

func (g *Game) Winner() (model.Color, bool) {
	return g.winner, g.hasWinner
}

// Ejected lists the colors removed from the match, in seating order.
func (g *Game) Ejected() []model.Color {
	var colors []model.Color
	for _, s := range g.seats {
		if s.ejected {
			colors = append(colors, s.color)
		}
	}
	return colors
}

// Players maps each seated color to the name it gave at start.
func (g *Game) Players() map[model.Color]string {
	names := make(map[model.Color]string, len(g.seats))
	for _, s := range g.seats {
		names[s.color] = s.name
	}
	return names
}
