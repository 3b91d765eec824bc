package model

// MoveTree yields the legal next mini-moves for one color, one per call to
// Next. Entry is offered first. After that it walks (pawn, distance) pairs in
// pawn-major order and keeps a move only if it is a legal mini-move and the
// board it leads to still passes IsValidTurn against the turn's start board.
//
// The cursor survives between calls, so a caller can stop after the first
// move, apply it, and build a fresh tree for the next step.
type MoveTree struct {
	color     Color
	board     Board
	turnStart Board
	dice      Dice
	pawns     PawnLocs

	entryDone bool
	pawn      int
	roll      int
}

type TreeOption func(*MoveTree)

// TurnStart sets the board the turn began on. It defaults to the tree's own
// board, which is right for the first mini-move of a roll.
func TurnStart(b Board) TreeOption {
	return func(t *MoveTree) {
		t.turnStart = b
	}
}

func NewMoveTree(b Board, d Dice, c Color, options ...TreeOption) *MoveTree {
	t := &MoveTree{
		color:     c,
		board:     b,
		turnStart: b,
		dice:      d.Clone(),
		pawns:     b.Pawns(c),
	}
	for _, o := range options {
		o(t)
	}
	return t
}

func (t *MoveTree) Next() (Move, bool) {
	if !t.entryDone {
		t.entryDone = true
		if m, ok := t.entry(); ok {
			return m, true
		}
	}

	for ; t.pawn < PawnsPerColor; t.pawn, t.roll = t.pawn+1, 0 {
		loc := t.pawns[t.pawn]
		if !loc.IsTrack() {
			continue
		}
		for t.roll < len(t.dice.Rolls) {
			i := t.roll
			t.roll++
			if t.repeatsEarlierRoll(i) {
				continue
			}
			m, _ := MoveFrom(Pawn{Color: t.color, ID: t.pawn}, loc, t.dice.Rolls[i])
			if t.accept(m) {
				return m, true
			}
		}
	}
	return Move{}, false
}

// entry offers EnterPiece for the first pawn still in the nest.
func (t *MoveTree) entry() (Move, bool) {
	if t.dice.CanEnter().Kind == NoEntry {
		return Move{}, false
	}
	for id, loc := range t.pawns {
		if !loc.IsNest() {
			continue
		}
		m := Enter(Pawn{Color: t.color, ID: id})
		return m, t.accept(m)
	}
	return Move{}, false
}

func (t *MoveTree) repeatsEarlierRoll(i int) bool {
	for _, d := range t.dice.Rolls[:i] {
		if d == t.dice.Rolls[i] {
			return true
		}
	}
	return false
}

func (t *MoveTree) accept(m Move) bool {
	if !IsValidMove(t.board, t.dice, m) {
		return false
	}
	result, err := t.board.HandleMove(m)
	if err != nil {
		return false
	}
	return IsValidTurn(t.turnStart, result.Board, t.color)
}

// All drains the tree.
func (t *MoveTree) All() []Move {
	var moves []Move
	for {
		m, ok := t.Next()
		if !ok {
			return moves
		}
		moves = append(moves, m)
	}
}

// LegalMoves lists every move NewMoveTree would yield.
func LegalMoves(b Board, d Dice, c Color, options ...TreeOption) []Move {
	return NewMoveTree(b, d, c, options...).All()
}

// CanMove reports whether any mini-move survives the turn-level check.
func CanMove(b Board, d Dice, c Color, options ...TreeOption) bool {
	_, ok := NewMoveTree(b, d, c, options...).Next()
	return ok
}
