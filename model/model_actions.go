package model

import "fmt"

// HandleMove applies m and returns the next board. It trusts that m passed
// IsValidMove apart from the destination: moves that would run past Home
// fail with ErrOvershoot rather than being clipped.
//
// Landing exactly on Home earns HomeBonus. Landing on a lone opposing pawn
// sends it back to its nest and earns BopBonus.
func (b Board) HandleMove(m Move) (MoveResult, error) {
	if !m.Pawn.Valid() {
		panic(fmt.Sprintf("model: invalid pawn %+v", m.Pawn))
	}
	color := m.Pawn.Color

	var dest Location
	switch m.Kind {
	case EnterPiece:
		dest = Track(color.Entrance())
	case MoveMain, MoveHome:
		var err error
		dest, err = Destination(color, Track(m.Start), m.Distance)
		if err != nil {
			return MoveResult{Board: b}, fmt.Errorf("%s: %w", m, err)
		}
	default:
		panic(fmt.Sprintf("model: unknown move kind %d", m.Kind))
	}

	next := b.with(m.Pawn, dest)
	if dest.IsHome() {
		return MoveResult{Board: next, Bonus: HomeBonus}, nil
	}
	if bopped, ok := b.CanBop(color, dest); ok {
		return MoveResult{Board: next.with(bopped, Nest()), Bonus: BopBonus}, nil
	}
	return MoveResult{Board: next}, nil
}

// ApplyMove runs HandleMove and settles the dice: the move's distance is
// consumed and any bonus added.
func ApplyMove(b Board, d Dice, m Move) (Board, Dice, error) {
	result, err := b.HandleMove(m)
	if err != nil {
		return b, d, err
	}
	next, err := d.ConsumeMove(m)
	if err != nil {
		return b, d, err
	}
	if result.Bonus > 0 {
		next = next.GiveBonus(result.Bonus)
	}
	return result.Board, next, nil
}

// SendBack returns the given pawn to its nest.
func (b Board) SendBack(p Pawn) Board {
	if !p.Valid() {
		panic(fmt.Sprintf("model: invalid pawn %+v", p))
	}
	return b.with(p, Nest())
}
