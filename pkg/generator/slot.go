package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"mercator-hq/slotgen/pkg/grammar/ast"
)

// SlotID identifies a slot within the engine that owns it.
type SlotID int

// Slot is a named value-set with single-use depletion state.
//
// Ordinary values are always eligible. A single-use value (one ending in \s)
// leaves the available pool when drawn and waits in the used pool. When the last
// single-use value still available is drawn, every used value returns to the
// available pool.
type Slot struct {
	name      string
	available []string
	used      []string
	singleUse int // single-use values currently available

	onDraw   func(slot string, singleUse bool)
	onRefill func(slot string)
}

// ErrEmptySlot is returned by NewSlot for a slot without values.
var ErrEmptySlot = errors.New("slot has no values")

// NewSlot creates a slot over values. Single-use values keep their marker.
func NewSlot(name string, values []string) (*Slot, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySlot, name)
	}
	s := &Slot{
		name:      name,
		available: make([]string, len(values)),
	}
	copy(s.available, values)
	for _, v := range values {
		if ast.IsSingleUse(v) {
			s.singleUse++
		}
	}
	return s, nil
}

// Draw picks a value uniformly from the available pool and returns it with any
// single-use marker stripped.
func (s *Slot) Draw(rng *rand.Rand) string {
	i := rng.IntN(len(s.available))
	value := s.available[i]

	if !ast.IsSingleUse(value) {
		s.notifyDraw(false)
		return value
	}

	s.available = append(s.available[:i], s.available[i+1:]...)
	s.used = append(s.used, value)
	s.singleUse--
	s.notifyDraw(true)

	if s.singleUse == 0 {
		s.refill()
	}

	return ast.StripMarker(value)
}

// refill moves every used value back into the available pool.
func (s *Slot) refill() {
	s.singleUse = len(s.used)
	s.available = append(s.available, s.used...)
	s.used = nil

	if s.onRefill != nil {
		s.onRefill(s.name)
	}
}

func (s *Slot) notifyDraw(singleUse bool) {
	if s.onDraw != nil {
		s.onDraw(s.name, singleUse)
	}
}

// Name returns the slot name.
func (s *Slot) Name() string {
	return s.name
}

// Available returns a copy of the values currently eligible for drawing.
// Single-use values keep their marker.
func (s *Slot) Available() []string {
	out := make([]string, len(s.available))
	copy(out, s.available)
	return out
}

// Used returns a copy of the single-use values drawn since the last refill.
func (s *Slot) Used() []string {
	out := make([]string, len(s.used))
	copy(out, s.used)
	return out
}

// Len returns the number of values the slot was defined with.
func (s *Slot) Len() int {
	return len(s.available) + len(s.used)
}

// SingleUseRemaining returns how many single-use values can be drawn before the
// next refill.
func (s *Slot) SingleUseRemaining() int {
	return s.singleUse
}
