package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorConstants(t *testing.T) {
	assert.Equal(t, 67, Red.Exit())
	assert.Equal(t, 16, Blue.Exit())
	assert.Equal(t, 33, Yellow.Exit())
	assert.Equal(t, 50, Green.Exit())

	for _, c := range Colors {
		assert.True(t, IsSafety(Track(c.Entrance())), "entrance of %s", c)
		assert.True(t, IsSafety(Track(c.Exit())), "exit of %s", c)
	}
	assert.False(t, IsSafety(Track(14)))
	assert.False(t, IsSafety(Track(104)))
	assert.False(t, IsSafety(Home()))
}

func TestFullPathVisitsEveryCellOnce(t *testing.T) {
	for _, c := range Colors {
		path := NewPath(c)
		var route []Location
		for {
			loc, ok := path.Next()
			if !ok {
				break
			}
			route = append(route, loc)
		}

		// nest + ring from entrance to exit + home row + home
		require.Len(t, route, 1+BoardSize-ExitToEntrance+1+HomeRowLength+1, "route of %s", c)
		assert.Equal(t, Nest(), route[0])
		assert.Equal(t, Track(c.Entrance()), route[1])
		assert.Equal(t, Track(c.Exit()), route[BoardSize-ExitToEntrance+1])
		assert.Equal(t, Track(c.HomeRowStart()), route[BoardSize-ExitToEntrance+2])
		assert.Equal(t, Home(), route[len(route)-1])

		seen := make(map[Location]bool)
		for _, loc := range route {
			assert.False(t, seen[loc], "%s visits %s twice", c, loc)
			seen[loc] = true
		}

		_, ok := path.Next()
		assert.False(t, ok, "path must stay exhausted")
	}
}

func TestPathFromOffRoute(t *testing.T) {
	_, ok := PathFrom(Red, Track(205)).Next()
	assert.False(t, ok)
	_, ok = PathFrom(Red, Home()).Next()
	assert.False(t, ok)
}

type destinationCase struct {
	color    Color
	start    int
	distance int
	want     Location
}

func checkDestinations(t *testing.T, cases []destinationCase) {
	t.Helper()
	for _, tc := range cases {
		got, err := Destination(tc.color, Track(tc.start), tc.distance)
		require.NoError(t, err, "%s from %d by %d", tc.color, tc.start, tc.distance)
		assert.Equal(t, tc.want, got, "%s from %d by %d", tc.color, tc.start, tc.distance)
	}
}

func TestDestinationFromEntrance(t *testing.T) {
	checkDestinations(t, []destinationCase{
		{Red, 4, 5, Track(9)},
		{Green, 55, 5, Track(60)},
		{Blue, 21, 5, Track(26)},
		{Yellow, 38, 5, Track(43)},
		{Yellow, 38, 10, Track(48)},
	})
}

func TestDestinationWrapsRing(t *testing.T) {
	checkDestinations(t, []destinationCase{
		{Blue, 66, 5, Track(3)},
		{Green, 66, 5, Track(3)},
		{Yellow, 64, 5, Track(1)},
		{Green, 58, 5, Track(63)},
	})
}

func TestDestinationIntoHomeRow(t *testing.T) {
	checkDestinations(t, []destinationCase{
		{Red, 66, 5, Track(103)},
		{Yellow, 33, 1, Track(300)},
		{Green, 45, 6, Track(400)},
		{Blue, 13, 6, Track(202)},
		{Red, 64, 10, Track(106)},
		{Green, 36, 20, Track(405)},
		{Yellow, 30, 10, Track(306)},
		{Blue, 1, 20, Track(204)},
	})
}

func TestDestinationWithinHomeRow(t *testing.T) {
	checkDestinations(t, []destinationCase{
		{Red, 100, 5, Track(105)},
		{Green, 400, 3, Track(403)},
		{Red, 103, 4, Home()},
		{Yellow, 301, 6, Home()},
		{Blue, 203, 4, Home()},
		{Blue, 4, 20, Home()},
	})
}

func TestDestinationOvershoot(t *testing.T) {
	cases := []destinationCase{
		{color: Red, start: 103, distance: 5},
		{color: Yellow, start: 304, distance: 6},
		{color: Green, start: 405, distance: 4},
		{color: Red, start: 64, distance: 20},
		{color: Green, start: 49, distance: 10},
		{color: Yellow, start: 28, distance: 20},
		{color: Blue, start: 16, distance: 10},
	}
	for _, tc := range cases {
		_, err := Destination(tc.color, Track(tc.start), tc.distance)
		assert.ErrorIs(t, err, ErrOvershoot, "%s from %d by %d", tc.color, tc.start, tc.distance)
	}
}

func TestDestinationRejectsBadInput(t *testing.T) {
	_, err := Destination(Red, Track(10), 0)
	assert.ErrorIs(t, err, ErrInvalidDistance)
	_, err = Destination(Red, Track(203), 1)
	assert.ErrorIs(t, err, ErrOffPath)
	_, err = Destination(Red, Nest(), 1)
	assert.ErrorIs(t, err, ErrOffPath)
}

func TestPathAndHandleMoveAgree(t *testing.T) {
	for _, c := range Colors {
		for start := 0; start < BoardSize; start++ {
			for distance := 1; distance <= 20; distance++ {
				steps := PathFrom(c, Track(start)).Take(distance)
				m := Main(NewPawn(c, 0), start, distance)
				b := BoardFrom(map[Color]PawnLocs{c: {Track(start), Nest(), Nest(), Nest()}})

				result, err := b.HandleMove(m)
				if len(steps) < distance {
					assert.ErrorIs(t, err, ErrOvershoot)
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, steps[len(steps)-1], result.Board.PawnLocation(m.Pawn))
			}
		}
	}
}

func TestProgressOrdersRoute(t *testing.T) {
	path := NewPath(Green)
	last := -1
	for {
		loc, ok := path.Next()
		if !ok {
			break
		}
		p, ok := Green.Progress(loc)
		require.True(t, ok)
		assert.Greater(t, p, last)
		last = p
	}
	_, ok := Green.Progress(Track(105))
	assert.False(t, ok)
}

func TestTakeHugeCountStopsAtHome(t *testing.T) {
	steps := PathFrom(Blue, Track(21)).Take(1 << 62)
	require.NotEmpty(t, steps)
	assert.Equal(t, Home(), steps[len(steps)-1])
	assert.LessOrEqual(t, len(steps), routeHome+1)
}
