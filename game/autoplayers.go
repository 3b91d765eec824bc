package game

import (
	"context"

	"github.com/zucenko/pachisi/model"
)

// PawnOrderPolicy moves pawns in a fixed order of progress: the most
// advanced pawn first, or the least advanced one. It plays out the whole
// roll in one reply, trying each pawn against every die before moving on to
// the next pawn.
type PawnOrderPolicy struct {
	Name          string
	Color         model.Color
	furthestFirst bool
}

// FirstPawnPolicy always tries to move its furthest pawn.
func FirstPawnPolicy(name string) *PawnOrderPolicy {
	return &PawnOrderPolicy{Name: name, furthestFirst: true}
}

// LastPawnPolicy always tries to move its rearmost pawn.
func LastPawnPolicy(name string) *PawnOrderPolicy {
	return &PawnOrderPolicy{Name: name}
}

func (p *PawnOrderPolicy) StartGame(_ context.Context, color model.Color) (string, error) {
	p.Color = color
	return p.Name, nil
}

func (p *PawnOrderPolicy) DoMove(_ context.Context, board model.Board, dice model.Dice) ([]model.Move, error) {
	return playOut(board, dice, p.Color, p.pick), nil
}

func (p *PawnOrderPolicy) DoublesPenalty(context.Context) error {
	return nil
}

func (p *PawnOrderPolicy) pick(board model.Board, dice model.Dice, start model.Board) (model.Move, bool) {
	sorted := board.SortedPawns(p.Color)
	for i := range sorted {
		pl := sorted[i]
		if p.furthestFirst {
			pl = sorted[len(sorted)-1-i]
		}
		for _, d := range dice.Rolls {
			m, ok := model.MoveFrom(model.NewPawn(p.Color, pl.ID), pl.Location, d)
			if !ok {
				break
			}
			if turnLegal(board, dice, start, m) {
				return m, true
			}
		}
	}
	return model.Move{}, false
}

// TreePolicy plays whatever the MoveTree offers first, until nothing is left.
type TreePolicy struct {
	Name  string
	Color model.Color
}

func (p *TreePolicy) StartGame(_ context.Context, color model.Color) (string, error) {
	p.Color = color
	return p.Name, nil
}

func (p *TreePolicy) DoMove(_ context.Context, board model.Board, dice model.Dice) ([]model.Move, error) {
	return playOut(board, dice, p.Color, func(b model.Board, d model.Dice, start model.Board) (model.Move, bool) {
		return model.NewMoveTree(b, d, p.Color, model.TurnStart(start)).Next()
	}), nil
}

func (p *TreePolicy) DoublesPenalty(context.Context) error {
	return nil
}

type picker func(board model.Board, dice model.Dice, start model.Board) (model.Move, bool)

// playOut applies picked moves on a scratch board until the picker gives up.
func playOut(start model.Board, dice model.Dice, color model.Color, pick picker) []model.Move {
	var moves []model.Move
	board := start
	for {
		m, ok := pick(board, dice, start)
		if !ok {
			return moves
		}
		next, nextDice, err := model.ApplyMove(board, dice, m)
		if err != nil {
			return moves
		}
		moves = append(moves, m)
		board, dice = next, nextDice
	}
}

func turnLegal(board model.Board, dice model.Dice, start model.Board, m model.Move) bool {
	if !model.IsValidMove(board, dice, m) {
		return false
	}
	result, err := board.HandleMove(m)
	if err != nil {
		return false
	}
	return model.IsValidTurn(start, result.Board, m.Pawn.Color)
}

// NewPolicy builds an autoplayer by strategy name: first, last or tree.
func NewPolicy(strategy, name string) (Policy, bool) {
	switch strategy {
	case "first":
		return FirstPawnPolicy(name), true
	case "last":
		return LastPawnPolicy(name), true
	case "tree":
		return &TreePolicy{Name: name}, true
	default:
		return nil, false
	}
}
