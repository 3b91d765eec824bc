package game

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/pachisi/model"
)

// MaxDoubles is the doubles streak that ends a turn with a penalty.
const MaxDoubles = 3

// TurnResult is where a turn left the game.
type TurnResult struct {
	Board   model.Board
	Dice    model.Dice
	Rolls   int
	Penalty bool
}

// PlayTurn runs one full turn for color: roll, collect mini-moves from the
// policy, validate the roll as a whole, and roll again after doubles. A nil
// policy plays the moves the MoveTree finds first.
//
// The third doubles in a row sends the color's most advanced pawn back to its
// nest and ends the turn. A policy that breaks the rules gets a *Violation
// and the board the turn started from.
func PlayTurn(ctx context.Context, board model.Board, color model.Color, policy Policy, roller Roller) (TurnResult, error) {
	if policy == nil {
		policy = &TreePolicy{Color: color}
	}
	start := board
	logger := log.WithField("color", color)

	doubles := 0
	for rolls := 1; ; rolls++ {
		if err := ctx.Err(); err != nil {
			return TurnResult{Board: start, Rolls: rolls - 1}, err
		}

		dice, isDoubles := roller.Roll(board.AllPawnsEntered(color))
		logger.WithFields(log.Fields{"roll": rolls, "dice": dice.String(), "doubles": isDoubles}).Debug("rolled")

		if isDoubles {
			doubles++
		}
		if doubles == MaxDoubles {
			board = doublesPenalty(board, color)
			logger.WithField("board", board.String()).Info("doubles penalty")
			if err := policy.DoublesPenalty(ctx); err != nil {
				return TurnResult{Board: board, Dice: dice, Rolls: rolls, Penalty: true}, fmt.Errorf("notify doubles penalty: %w", err)
			}
			return TurnResult{Board: board, Dice: dice, Rolls: rolls, Penalty: true}, nil
		}

		rollStart := board
		var err error
		board, dice, err = collectMiniMoves(ctx, rollStart, dice, color, policy)
		if err != nil {
			return TurnResult{Board: start, Dice: dice, Rolls: rolls}, err
		}
		if !model.IsValidTurn(rollStart, board, color) {
			return TurnResult{Board: start, Dice: dice, Rolls: rolls}, &Violation{Color: color, Err: ErrInvalidTurn}
		}

		_, won := board.Winner()
		if !isDoubles || won {
			return TurnResult{Board: board, Dice: dice, Rolls: rolls}, nil
		}
	}
}

func collectMiniMoves(ctx context.Context, start model.Board, dice model.Dice, color model.Color, policy Policy) (model.Board, model.Dice, error) {
	board := start
	// HasValidMoves alone would keep asking after the only moves left are
	// ones that drag a blockade along.
	for model.HasValidMoves(board, dice, color) && model.CanMove(board, dice, color, model.TurnStart(start)) {
		moves, err := policy.DoMove(ctx, board, dice.Clone())
		if err != nil {
			return board, dice, fmt.Errorf("%s do move: %w", color, err)
		}
		if len(moves) == 0 {
			return board, dice, &Violation{Color: color, Err: ErrMovesRemaining}
		}
		for _, m := range moves {
			m := m
			if m.Pawn.Color != color || !model.IsValidMove(board, dice, m) {
				return board, dice, &Violation{Color: color, Move: &m, Err: ErrIllegalMove}
			}
			next, nextDice, err := model.ApplyMove(board, dice, m)
			if err != nil {
				return board, dice, &Violation{Color: color, Move: &m, Err: fmt.Errorf("%w: %v", ErrIllegalMove, err)}
			}
			log.WithFields(log.Fields{"color": color, "move": m.String(), "dice": nextDice.String()}).Debug("mini-move")
			board, dice = next, nextDice
		}
	}
	return board, dice, nil
}

// doublesPenalty sends the color's most advanced pawn that is still on the
// track back to its nest.
func doublesPenalty(board model.Board, color model.Color) model.Board {
	sorted := board.SortedPawns(color)
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Location.IsTrack() {
			return board.SendBack(model.NewPawn(color, sorted[i].ID))
		}
	}
	return board
}
