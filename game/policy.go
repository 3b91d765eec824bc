package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/zucenko/pachisi/model"
)

// Policy decides moves for one color. The engine re-checks everything a
// policy returns, so a policy may be remote or untrusted.
type Policy interface {
	// StartGame tells the policy its color and returns the player's name.
	StartGame(ctx context.Context, color model.Color) (string, error)

	// DoMove asks for the next mini-moves on the given snapshot. Returning
	// several moves plays them in order; returning none passes, which is only
	// accepted when no legal move is left.
	DoMove(ctx context.Context, board model.Board, dice model.Dice) ([]model.Move, error)

	// DoublesPenalty tells the policy it rolled doubles three times in a row.
	DoublesPenalty(ctx context.Context) error
}

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrInvalidTurn    = errors.New("turn moves a blockade together")
	ErrMovesRemaining = errors.New("passed while legal moves remain")
	ErrGameFull       = errors.New("game is full")
	ErrNoPlayers      = errors.New("no players registered")
)

// Violation is a protocol violation by a policy: an illegal mini-move, an
// invalid turn, or giving up early. The offending player is ejected.
type Violation struct {
	Color model.Color
	Move  *model.Move
	Err   error
}

func (v *Violation) Error() string {
	if v.Move != nil {
		return fmt.Sprintf("%s: %v: %s", v.Color, v.Err, v.Move)
	}
	return fmt.Sprintf("%s: %v", v.Color, v.Err)
}

func (v *Violation) Unwrap() error {
	return v.Err
}
