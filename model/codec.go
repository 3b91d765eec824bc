package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal color %d: unknown", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Locations travel as "nest", "home" or a bare track index.
func (l Location) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case KindNest, KindHome:
		return json.Marshal(l.String())
	default:
		return []byte(strconv.Itoa(l.Index)), nil
	}
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var index int
	if err := json.Unmarshal(data, &index); err == nil {
		*l = Track(index)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("location %s: %w", data, err)
	}
	switch s {
	case "nest":
		*l = Nest()
	case "home":
		*l = Home()
	default:
		return fmt.Errorf("location %q: unknown", s)
	}
	return nil
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MoveKind) UnmarshalText(text []byte) error {
	for _, kind := range []MoveKind{EnterPiece, MoveMain, MoveHome} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("move kind %q: unknown", text)
}

type moveJSON struct {
	Kind     MoveKind `json:"kind"`
	Pawn     Pawn     `json:"pawn"`
	Start    *int     `json:"start,omitempty"`
	Distance *int     `json:"distance,omitempty"`
}

func (m Move) MarshalJSON() ([]byte, error) {
	out := moveJSON{Kind: m.Kind, Pawn: m.Pawn}
	if m.Kind != EnterPiece {
		out.Start, out.Distance = &m.Start, &m.Distance
	}
	return json.Marshal(out)
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var in moveJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = Move{Kind: in.Kind, Pawn: in.Pawn}
	if in.Kind == EnterPiece {
		return nil
	}
	if in.Start == nil || in.Distance == nil {
		return fmt.Errorf("%s: start and distance are required", in.Kind)
	}
	m.Start, m.Distance = *in.Start, *in.Distance
	return nil
}

func (b Board) MarshalJSON() ([]byte, error) {
	positions := make(map[Color]PawnLocs, NumColors)
	for _, c := range Colors {
		positions[c] = b.Positions[c]
	}
	return json.Marshal(positions)
}

// UnmarshalJSON accepts a partial map; missing colors stay in their nests.
func (b *Board) UnmarshalJSON(data []byte) error {
	var positions map[Color]PawnLocs
	if err := json.Unmarshal(data, &positions); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	for _, locs := range positions {
		for _, l := range locs {
			if l.IsTrack() && l.Index < 0 {
				return fmt.Errorf("board: negative track index %d", l.Index)
			}
		}
	}
	*b = BoardFrom(positions)
	return nil
}

func (d Dice) MarshalJSON() ([]byte, error) {
	if d.Rolls == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Rolls)
}

func (d *Dice) UnmarshalJSON(data []byte) error {
	var rolls []int
	if err := json.Unmarshal(data, &rolls); err != nil {
		return fmt.Errorf("dice: %w", err)
	}
	*d = NewDice(rolls...)
	return nil
}
