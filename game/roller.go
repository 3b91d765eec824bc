package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"

	"github.com/zucenko/pachisi/model"
)

// Roller throws the dice for one roll of a turn.
type Roller interface {
	Roll(applyDoublesBonus bool) (model.Dice, bool)
}

// RandomRoller rolls fair dice from a seeded source. It is safe for
// concurrent use.
type RandomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomRoller(seed int64) *RandomRoller {
	return &RandomRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomRoller) Roll(applyDoublesBonus bool) (model.Dice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return model.Roll(r.rng, applyDoublesBonus)
}

// NewSeed draws a seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Throw is one scripted pair of pips.
type Throw struct {
	D1, D2 int
}

// FixedRoller replays scripted throws, then keeps repeating the last one.
type FixedRoller struct {
	mu     sync.Mutex
	throws []Throw
	next   int
}

func NewFixedRoller(throws ...Throw) *FixedRoller {
	if len(throws) == 0 {
		panic("game: FixedRoller needs at least one throw")
	}
	return &FixedRoller{throws: throws}
}

func (r *FixedRoller) Roll(applyDoublesBonus bool) (model.Dice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.throws[r.next]
	if r.next < len(r.throws)-1 {
		r.next++
	}
	return model.FromPips(t.D1, t.D2, applyDoublesBonus)
}
