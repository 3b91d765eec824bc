// Package model holds the board, dice and rules of the race game.
//
// Every value here is an immutable snapshot: operations take a Board or Dice
// and hand back a new one. Nothing in this package blocks, logs or keeps
// shared state, so snapshots can be passed to other goroutines freely.
package model

import (
	"fmt"
	"strings"
)

type Color int

const (
	Red Color = iota
	Green
	Blue
	Yellow
)

const NumColors = 4

// Colors lists the colors in ring order, which is also seating order.
var Colors = [NumColors]Color{Red, Blue, Yellow, Green}

func (c Color) Valid() bool {
	return c >= Red && c <= Yellow
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// Short is the one-letter tag used by Board.String.
func (c Color) Short() string {
	return strings.ToUpper(c.String()[:1])
}

func ParseColor(s string) (Color, error) {
	for _, c := range Colors {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func (c Color) mustBeValid() {
	if !c.Valid() {
		panic(fmt.Sprintf("model: unknown color %d", int(c)))
	}
}

type LocationKind uint8

const (
	// KindNest is the zero value so a zero Board has every pawn in its nest.
	KindNest LocationKind = iota
	KindTrack
	KindHome
)

// Location is where a pawn sits. Track indexes are absolute: 0..67 is the
// shared main ring, each color's home row lives at its own HomeRowStart.
type Location struct {
	Kind  LocationKind
	Index int
}

func Nest() Location { return Location{Kind: KindNest} }

func Home() Location { return Location{Kind: KindHome} }

func Track(index int) Location { return Location{Kind: KindTrack, Index: index} }

func (l Location) IsNest() bool { return l.Kind == KindNest }

func (l Location) IsHome() bool { return l.Kind == KindHome }

func (l Location) IsTrack() bool { return l.Kind == KindTrack }

// OnMainRing reports whether l is a cell of the shared ring.
func (l Location) OnMainRing() bool {
	return l.Kind == KindTrack && l.Index >= 0 && l.Index < BoardSize
}

func (l Location) String() string {
	switch l.Kind {
	case KindNest:
		return "nest"
	case KindHome:
		return "home"
	default:
		return fmt.Sprintf("%d", l.Index)
	}
}

// Pawn identifies one of the four pawns of a color.
type Pawn struct {
	Color Color `json:"color"`
	ID    int   `json:"id"`
}

func NewPawn(color Color, id int) Pawn {
	color.mustBeValid()
	if id < 0 || id >= PawnsPerColor {
		panic(fmt.Sprintf("model: pawn id %d out of range", id))
	}
	return Pawn{Color: color, ID: id}
}

func (p Pawn) Valid() bool {
	return p.Color.Valid() && p.ID >= 0 && p.ID < PawnsPerColor
}

func (p Pawn) String() string {
	return fmt.Sprintf("%s%d", p.Color.Short(), p.ID)
}

type MoveKind uint8

const (
	EnterPiece MoveKind = iota
	MoveMain
	MoveHome
)

func (k MoveKind) String() string {
	switch k {
	case EnterPiece:
		return "enter-piece"
	case MoveMain:
		return "move-main"
	case MoveHome:
		return "move-home"
	default:
		return fmt.Sprintf("move-kind(%d)", int(k))
	}
}

// Move is one mini-move. Start and Distance are unused for EnterPiece.
// MoveMain starts on the main ring (it may end in the home row); MoveHome
// starts inside the home row.
type Move struct {
	Kind     MoveKind
	Pawn     Pawn
	Start    int
	Distance int
}

func Enter(p Pawn) Move {
	return Move{Kind: EnterPiece, Pawn: p}
}

func Main(p Pawn, start, distance int) Move {
	return Move{Kind: MoveMain, Pawn: p, Start: start, Distance: distance}
}

func HomeRow(p Pawn, start, distance int) Move {
	return Move{Kind: MoveHome, Pawn: p, Start: start, Distance: distance}
}

// MoveFrom builds the ordinary move for a pawn sitting at loc. It returns
// false for pawns at Home, which cannot move, and builds an EnterPiece for
// pawns in the Nest.
func MoveFrom(p Pawn, loc Location, distance int) (Move, bool) {
	switch {
	case loc.IsHome():
		return Move{}, false
	case loc.IsNest():
		return Enter(p), true
	case p.Color.IsHomeRow(loc):
		return HomeRow(p, loc.Index, distance), true
	default:
		return Main(p, loc.Index, distance), true
	}
}

func (m Move) String() string {
	if m.Kind == EnterPiece {
		return fmt.Sprintf("%s %s", m.Kind, m.Pawn)
	}
	return fmt.Sprintf("%s %s from %d by %d", m.Kind, m.Pawn, m.Start, m.Distance)
}

// MoveResult is the board after a move and the bonus it earned, 0 when none.
// The caller feeds a non-zero bonus back into the mover's Dice.
type MoveResult struct {
	Board Board
	Bonus int
}
