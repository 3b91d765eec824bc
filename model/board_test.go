package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardAllNest(t *testing.T) {
	b := NewBoard()
	for _, c := range Colors {
		assert.Equal(t, PawnLocs{Nest(), Nest(), Nest(), Nest()}, b.Pawns(c))
		assert.False(t, b.AllPawnsEntered(c))
	}
	_, won := b.Winner()
	assert.False(t, won)
	assert.Empty(t, b.Blockades())
}

func TestPawnsUnknownColorPanics(t *testing.T) {
	assert.Panics(t, func() { NewBoard().Pawns(Color(9)) })
}

func TestBlockades(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red:   {Track(13), Track(13), Nest(), Nest()},
		Green: {Track(402), Track(402), Home(), Home()},
		Blue:  {Track(30), Track(31), Nest(), Nest()},
	})
	assert.ElementsMatch(t, []Location{Track(13), Track(402)}, b.Blockades())
	assert.True(t, b.IsBlockade(Track(13)))
	assert.False(t, b.IsBlockade(Track(30)))
	assert.False(t, b.IsBlockade(Home()))
}

func TestCanBopOtherPawn(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Green:  {Track(14), Nest(), Nest(), Nest()},
		Yellow: {Track(29), Nest(), Nest(), Nest()},
	})
	p, ok := b.CanBop(Red, Track(14))
	require.True(t, ok)
	assert.Equal(t, NewPawn(Green, 0), p)

	p, ok = b.CanBop(Blue, Track(29))
	require.True(t, ok)
	assert.Equal(t, NewPawn(Yellow, 0), p)
}

func TestCannotBopOwnPawn(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(13), Track(14), Nest(), Nest()},
	})
	_, ok := b.CanBop(Red, Track(13))
	assert.False(t, ok)
}

func TestCannotBopEmpty(t *testing.T) {
	_, ok := NewBoard().CanBop(Green, Track(13))
	assert.False(t, ok)
}

func TestCannotBopBlockade(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(13), Track(13), Nest(), Nest()},
	})
	_, ok := b.CanBop(Green, Track(13))
	assert.False(t, ok)
}

func TestCanBopOffOwnEntrance(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Green: {Track(4), Nest(), Nest(), Nest()},
	})
	p, ok := b.CanBop(Red, Track(4))
	require.True(t, ok)
	assert.Equal(t, NewPawn(Green, 0), p)

	// Red's entrance is only a bop square for Red.
	_, ok = b.CanBop(Yellow, Track(4))
	assert.False(t, ok)
}

func TestCannotBopOffSafety(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Green: {Track(11), Nest(), Nest(), Nest()},
	})
	_, ok := b.CanBop(Yellow, Track(11))
	assert.False(t, ok)
}

func TestHandleMoveEnter(t *testing.T) {
	result, err := NewBoard().HandleMove(Enter(NewPawn(Green, 0)))
	require.NoError(t, err)
	assert.Equal(t, BoardFrom(map[Color]PawnLocs{
		Green: {Track(55), Nest(), Nest(), Nest()},
	}), result.Board)
	assert.Zero(t, result.Bonus)
}

func TestHandleMoveEnterBops(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Blue: {Track(4), Track(30), Nest(), Nest()},
	})
	result, err := b.HandleMove(Enter(NewPawn(Red, 2)))
	require.NoError(t, err)
	assert.Equal(t, BopBonus, result.Bonus)
	assert.Equal(t, Nest(), result.Board.PawnLocation(NewPawn(Blue, 0)))
	assert.Equal(t, Track(4), result.Board.PawnLocation(NewPawn(Red, 2)))
}

func TestHandleMoveHomeRow(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(100), Track(103), Nest(), Nest()},
	})
	result, err := b.HandleMove(HomeRow(NewPawn(Red, 0), 100, 5))
	require.NoError(t, err)
	assert.Equal(t, Track(105), result.Board.PawnLocation(NewPawn(Red, 0)))
	assert.Zero(t, result.Bonus)

	result, err = b.HandleMove(HomeRow(NewPawn(Red, 1), 103, 4))
	require.NoError(t, err)
	assert.Equal(t, Home(), result.Board.PawnLocation(NewPawn(Red, 1)))
	assert.Equal(t, HomeBonus, result.Bonus)
}

func TestHandleMoveBop(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Yellow: {Track(10), Nest(), Nest(), Nest()},
		Green:  {Track(14), Track(40), Nest(), Nest()},
	})
	result, err := b.HandleMove(Main(NewPawn(Yellow, 0), 10, 4))
	require.NoError(t, err)
	assert.Equal(t, BopBonus, result.Bonus)
	assert.Equal(t, BoardFrom(map[Color]PawnLocs{
		Yellow: {Track(14), Nest(), Nest(), Nest()},
		Green:  {Nest(), Track(40), Nest(), Nest()},
	}), result.Board)

	// the input snapshot is untouched
	assert.Equal(t, Track(14), b.PawnLocation(NewPawn(Green, 0)))
}

func TestHandleMoveOvershootNeverClips(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(103), Nest(), Nest(), Nest()},
	})
	result, err := b.HandleMove(HomeRow(NewPawn(Red, 0), 103, 5))
	assert.ErrorIs(t, err, ErrOvershoot)
	assert.Equal(t, b, result.Board)
}

func TestHandleMoveHugeDistanceOvershoots(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(10), Nest(), Nest(), Nest()},
	})
	for _, distance := range []int{routeHome + 2, 1_000_000_000, 1 << 62} {
		assert.NotPanics(t, func() {
			result, err := b.HandleMove(Main(NewPawn(Red, 0), 10, distance))
			assert.ErrorIs(t, err, ErrOvershoot)
			assert.Equal(t, b, result.Board)
		}, "distance %d", distance)
	}
}

func TestApplyMoveFoldsBonus(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(103), Nest(), Nest(), Nest()},
	})
	next, dice, err := ApplyMove(b, NewDice(4, 2), HomeRow(NewPawn(Red, 0), 103, 4))
	require.NoError(t, err)
	assert.Equal(t, Home(), next.PawnLocation(NewPawn(Red, 0)))
	assert.Equal(t, []int{2, HomeBonus}, dice.Rolls)
}

func TestWinner(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Blue:   {Home(), Home(), Home(), Home()},
		Yellow: {Home(), Home(), Home(), Track(305)},
	})
	c, ok := b.Winner()
	require.True(t, ok)
	assert.Equal(t, Blue, c)
	assert.True(t, b.AllPawnsEntered(Yellow))
}

func TestSortedPawns(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Green:  {Track(57), Home(), Track(0), Track(402)},
		Yellow: {Track(57), Nest(), Track(302), Track(0)},
	})
	assert.Equal(t, []PawnLoc{
		{0, Track(57)}, {2, Track(0)}, {3, Track(402)}, {1, Home()},
	}, b.SortedPawns(Green))
	assert.Equal(t, []PawnLoc{
		{1, Nest()}, {0, Track(57)}, {3, Track(0)}, {2, Track(302)},
	}, b.SortedPawns(Yellow))
}

func TestSortedPawnsFollowsEachRoute(t *testing.T) {
	locs := PawnLocs{Track(11), Track(30), Track(49), Track(66)}
	b := BoardFrom(map[Color]PawnLocs{Red: locs, Blue: locs, Yellow: locs, Green: locs})
	ids := func(c Color) []int {
		var out []int
		for _, p := range b.SortedPawns(c) {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []int{0, 1, 2, 3}, ids(Red))
	assert.Equal(t, []int{1, 2, 3, 0}, ids(Blue))
	assert.Equal(t, []int{2, 3, 0, 1}, ids(Yellow))
	assert.Equal(t, []int{3, 0, 1, 2}, ids(Green))
}

func TestBoardString(t *testing.T) {
	b := BoardFrom(map[Color]PawnLocs{
		Red: {Track(4), Home(), Nest(), Track(101)},
	})
	assert.Equal(t, "R[4 home nest 101] B[nest nest nest nest] Y[nest nest nest nest] G[nest nest nest nest]", b.String())
}
