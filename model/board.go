package model

import (
	"fmt"
	"sort"
	"strings"
)

// PawnLocs holds a color's pawns by ordinal. Slots never get reordered.
type PawnLocs [PawnsPerColor]Location

// Board is a snapshot of every pawn's location. It is a plain value: copying
// a Board copies the whole position.
type Board struct {
	Positions [NumColors]PawnLocs
}

// NewBoard returns the starting position with every pawn in its nest.
func NewBoard() Board {
	return Board{}
}

// BoardFrom starts from NewBoard and overrides the given colors.
func BoardFrom(positions map[Color]PawnLocs) Board {
	b := NewBoard()
	for c, locs := range positions {
		c.mustBeValid()
		b.Positions[c] = locs
	}
	return b
}

func (b Board) Pawns(c Color) PawnLocs {
	c.mustBeValid()
	return b.Positions[c]
}

func (b Board) PawnLocation(p Pawn) Location {
	if !p.Valid() {
		panic(fmt.Sprintf("model: invalid pawn %+v", p))
	}
	return b.Positions[p.Color][p.ID]
}

func (b Board) with(p Pawn, loc Location) Board {
	b.Positions[p.Color][p.ID] = loc
	return b
}

// Blockades lists every track cell holding two pawns of one color.
func (b Board) Blockades() []Location {
	var blockades []Location
	for _, c := range Colors {
		blockades = append(blockades, b.blockadesOf(c)...)
	}
	return blockades
}

func (b Board) blockadesOf(c Color) []Location {
	var blockades []Location
	seen := make(map[Location]int, PawnsPerColor)
	for _, loc := range b.Positions[c] {
		if !loc.IsTrack() {
			continue
		}
		seen[loc]++
		if seen[loc] == 2 {
			blockades = append(blockades, loc)
		}
	}
	return blockades
}

func (b Board) IsBlockade(loc Location) bool {
	if !loc.IsTrack() {
		return false
	}
	for _, c := range Colors {
		n := 0
		for _, l := range b.Positions[c] {
			if l == loc {
				n++
			}
		}
		if n >= 2 {
			return true
		}
	}
	return false
}

// occupants returns the pawns of colors other than c standing on loc.
func (b Board) occupants(c Color, loc Location) []Pawn {
	var pawns []Pawn
	for _, other := range Colors {
		if other == c {
			continue
		}
		for id, l := range b.Positions[other] {
			if l == loc {
				pawns = append(pawns, Pawn{Color: other, ID: id})
			}
		}
	}
	return pawns
}

// CanBop reports the opposing pawn a piece of color c would send home by
// landing on dest. Safety squares protect their occupants, except the mover's
// own entrance. Blockades cannot be bopped.
func (b Board) CanBop(c Color, dest Location) (Pawn, bool) {
	if !dest.IsTrack() {
		return Pawn{}, false
	}
	if IsSafety(dest) && dest != Track(c.Entrance()) {
		return Pawn{}, false
	}
	occupants := b.occupants(c, dest)
	if len(occupants) != 1 {
		return Pawn{}, false
	}
	return occupants[0], true
}

// Winner returns the first color, in ring order, with every pawn home.
func (b Board) Winner() (Color, bool) {
	for _, c := range Colors {
		if b.allAt(c, Home()) {
			return c, true
		}
	}
	return 0, false
}

func (b Board) allAt(c Color, loc Location) bool {
	for _, l := range b.Pawns(c) {
		if l != loc {
			return false
		}
	}
	return true
}

func (b Board) AllPawnsEntered(c Color) bool {
	for _, l := range b.Pawns(c) {
		if l.IsNest() {
			return false
		}
	}
	return true
}

// PawnLoc pairs a pawn ordinal with its location.
type PawnLoc struct {
	ID       int
	Location Location
}

// SortedPawns orders a color's pawns by progress along its route, the least
// advanced first. Ties keep ordinal order.
func (b Board) SortedPawns(c Color) []PawnLoc {
	pawns := b.Pawns(c)
	sorted := make([]PawnLoc, 0, PawnsPerColor)
	for id, loc := range pawns {
		sorted = append(sorted, PawnLoc{ID: id, Location: loc})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, _ := c.Progress(sorted[i].Location)
		pj, _ := c.Progress(sorted[j].Location)
		return pi < pj
	})
	return sorted
}

func (b Board) String() string {
	parts := make([]string, 0, NumColors)
	for _, c := range Colors {
		locs := make([]string, 0, PawnsPerColor)
		for _, l := range b.Positions[c] {
			locs = append(locs, l.String())
		}
		parts = append(parts, c.Short()+"["+strings.Join(locs, " ")+"]")
	}
	return strings.Join(parts, " ")
}
