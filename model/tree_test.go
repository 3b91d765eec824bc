package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveTreeOffersEntryFirst(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Green: {Track(20), Nest(), Nest(), Home()},
	})
	moves := LegalMoves(b, NewDice(5, 2), Green)
	require.NotEmpty(t, moves)
	assert.Equal(t, Enter(NewPawn(Green, 1)), moves[0])
	assert.Equal(t, []Move{
		Enter(NewPawn(Green, 1)),
		Main(NewPawn(Green, 0), 20, 5),
		Main(NewPawn(Green, 0), 20, 2),
	}, moves)
}

func TestMoveTreeAllNest(t *testing.T) {
	assert.Equal(t, []Move{Enter(NewPawn(Green, 0))}, LegalMoves(NewBoard(), NewDice(5, 2), Green))
	assert.Empty(t, LegalMoves(NewBoard(), NewDice(3, 3), Green))
}

func TestMoveTreeSkipsRepeatedDistances(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(10), Home(), Home(), Home()},
	})
	assert.Equal(t, []Move{Main(NewPawn(Red, 0), 10, 3)}, LegalMoves(b, NewDice(3, 3), Red))
}

func TestMoveTreeResumes(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(10), Track(20), Home(), Home()},
	})
	tree := NewMoveTree(b, NewDice(1, 2), Red)
	var got []Move
	for m, ok := tree.Next(); ok; m, ok = tree.Next() {
		got = append(got, m)
	}
	assert.Equal(t, []Move{
		Main(NewPawn(Red, 0), 10, 1),
		Main(NewPawn(Red, 0), 10, 2),
		Main(NewPawn(Red, 1), 20, 1),
		Main(NewPawn(Red, 1), 20, 2),
	}, got)

	_, ok := tree.Next()
	assert.False(t, ok, "exhausted tree stays exhausted")
}

func TestMoveTreeKeepsBlockadeApart(t *testing.T) {
	start := BoardFrom(map[Color]PawnLocs{
		Red: {Track(10), Track(10), Home(), Home()},
	})
	assert.Equal(t, []Move{
		Main(NewPawn(Red, 0), 10, 3),
		Main(NewPawn(Red, 1), 10, 3),
	}, LegalMoves(start, NewDice(3, 3), Red))

	next, dice, err := ApplyMove(start, NewDice(3, 3), Main(NewPawn(Red, 0), 10, 3))
	require.NoError(t, err)

	// Moving the other half onto 13 would carry the blockade along.
	assert.Equal(t, []Move{Main(NewPawn(Red, 0), 13, 3)}, LegalMoves(next, dice, Red, TurnStart(start)))

	// Without the turn start, the tree only sees a single mini-move.
	assert.Contains(t, LegalMoves(next, dice, Red), Main(NewPawn(Red, 1), 10, 3))
}

func TestMoveTreeNoMoves(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Green:  {Nest(), Track(19), Track(406), Track(47)},
		Blue:   {Track(50), Nest(), Nest(), Nest()},
		Yellow: {Track(22), Track(22), Nest(), Nest()},
	})
	assert.False(t, CanMove(b, NewDice(3, 3), Green))
}

func TestMoveTreeEntranceBlockaded(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red:    {Track(4), Track(4), Nest(), Nest()},
		Yellow: {Track(9), Track(9), Nest(), Nest()},
	})
	assert.Empty(t, LegalMoves(b, NewDice(5), Red))
}

func TestMoveTreeMovesAreValid(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red:    {Track(5), Track(5), Track(4), Nest()},
		Blue:   {Track(9), Track(60), Nest(), Nest()},
		Yellow: {Track(12), Track(12), Track(102), Nest()},
	})
	d := NewDice(3, 5, 20)
	for _, m := range LegalMoves(b, d, Red) {
		assert.True(t, IsValidMove(b, d, m), "%s", m)
		result, err := b.HandleMove(m)
		require.NoError(t, err)
		assert.True(t, IsValidTurn(b, result.Board, Red))
	}
}
