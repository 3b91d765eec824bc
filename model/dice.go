package model

import (
	"fmt"
	"math/rand"
	"slices"
)

const dieSides = 6

// Dice are the distances still available in a turn. Methods return new
// values and never touch the receiver's slice.
type Dice struct {
	Rolls []int
}

func NewDice(rolls ...int) Dice {
	return Dice{Rolls: slices.Clone(rolls)}
}

// Roll throws two six-sided dice. A doubles throw with applyDoublesBonus set
// also grants the bottoms of the dice: [d, d, 7-d, 7-d]. The returned flag
// reports doubles whether or not the bonus was applied.
func Roll(rng *rand.Rand, applyDoublesBonus bool) (Dice, bool) {
	d1 := rng.Intn(dieSides) + 1
	d2 := rng.Intn(dieSides) + 1
	return FromPips(d1, d2, applyDoublesBonus)
}

// FromPips builds the dice for a known throw.
func FromPips(d1, d2 int, applyDoublesBonus bool) (Dice, bool) {
	doubles := d1 == d2
	if doubles && applyDoublesBonus {
		bottom := dieSides + 1 - d1
		return NewDice(d1, d1, bottom, bottom), true
	}
	return NewDice(d1, d2), doubles
}

type EntryKind uint8

const (
	NoEntry EntryKind = iota
	WithFive
	WithSum
)

// Entry says how the dice can pay for entering a pawn. A and B are the two
// distances spent for WithSum.
type Entry struct {
	Kind EntryKind
	A, B int
}

func (d Dice) CanEnter() Entry {
	for i, a := range d.Rolls {
		if a == 5 {
			return Entry{Kind: WithFive}
		}
		for j, b := range d.Rolls {
			if i != j && a+b == 5 {
				return Entry{Kind: WithSum, A: a, B: b}
			}
		}
	}
	return Entry{Kind: NoEntry}
}

func (d Dice) Contains(distance int) bool {
	return slices.Contains(d.Rolls, distance)
}

// Consume removes one occurrence of distance, keeping the order of the rest.
func (d Dice) Consume(distance int) (Dice, error) {
	i := slices.Index(d.Rolls, distance)
	if i < 0 {
		return d, fmt.Errorf("consume %d from %v: %w", distance, d.Rolls, ErrInvalidConsumption)
	}
	return Dice{Rolls: slices.Delete(slices.Clone(d.Rolls), i, i+1)}, nil
}

func (d Dice) ConsumeEntry() (Dice, error) {
	entry := d.CanEnter()
	switch entry.Kind {
	case WithFive:
		return d.Consume(5)
	case WithSum:
		next, err := d.Consume(entry.A)
		if err != nil {
			return d, err
		}
		return next.Consume(entry.B)
	default:
		return d, ErrNoEntry
	}
}

// ConsumeMove spends whatever the move needs.
func (d Dice) ConsumeMove(m Move) (Dice, error) {
	if m.Kind == EnterPiece {
		return d.ConsumeEntry()
	}
	return d.Consume(m.Distance)
}

func (d Dice) GiveBonus(amount int) Dice {
	return Dice{Rolls: append(slices.Clone(d.Rolls), amount)}
}

func (d Dice) AllUsed() bool {
	return len(d.Rolls) == 0
}

func (d Dice) Clone() Dice {
	return NewDice(d.Rolls...)
}

func (d Dice) String() string {
	return fmt.Sprint(d.Rolls)
}
