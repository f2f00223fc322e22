package generator

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// pool returns available and used values together, sorted.
func pool(s *Slot) []string {
	all := append(s.Available(), s.Used()...)
	slices.Sort(all)
	return all
}

func mustSlot(t *testing.T, name string, values []string) *Slot {
	t.Helper()
	s, err := NewSlot(name, values)
	if err != nil {
		t.Fatalf("NewSlot(%q) error = %v", name, err)
	}
	return s
}

func TestNewSlot_Empty(t *testing.T) {
	for _, values := range [][]string{nil, {}} {
		s, err := NewSlot("EMPTY", values)
		if !errors.Is(err, ErrEmptySlot) {
			t.Errorf("NewSlot(%v) error = %v, want ErrEmptySlot", values, err)
		}
		if s != nil {
			t.Errorf("NewSlot(%v) returned a slot", values)
		}
	}
}

func TestSlot_OrdinaryValues(t *testing.T) {
	s := mustSlot(t, "LETTER", []string{"a", "b"})
	rng := testRand(1)

	seen := map[string]int{}
	for range 200 {
		v := s.Draw(rng)
		if v != "a" && v != "b" {
			t.Fatalf("Draw() = %q, want a or b", v)
		}
		seen[v]++
	}

	if seen["a"] == 0 || seen["b"] == 0 {
		t.Errorf("Draw() distribution = %v, want both values", seen)
	}
	if diff := cmp.Diff([]string{"a", "b"}, s.Available()); diff != "" {
		t.Errorf("Available() changed (-want +got):\n%s", diff)
	}
	if len(s.Used()) != 0 {
		t.Errorf("Used() = %v, want empty", s.Used())
	}
}

func TestSlot_DeterministicUnderSeed(t *testing.T) {
	draw := func() []string {
		s := mustSlot(t, "LETTER", []string{"a", "b", `c\s`, "d"})
		rng := testRand(42)
		var out []string
		for range 50 {
			out = append(out, s.Draw(rng))
		}
		return out
	}

	if diff := cmp.Diff(draw(), draw()); diff != "" {
		t.Errorf("draw sequences differ under the same seed (-first +second):\n%s", diff)
	}
}

func TestSlot_SingleUseRefill(t *testing.T) {
	original := []string{`a\s`, `b\s`, "c"}

	for seed := range uint64(50) {
		s := mustSlot(t, "S", original)
		rng := testRand(seed)

		drawnSinceRefill := map[string]bool{}
		sawC := false

		for i := range 100 {
			v := s.Draw(rng)

			if diff := cmp.Diff(original, pool(s), cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
				t.Fatalf("seed %d draw %d: pool changed (-want +got):\n%s", seed, i, diff)
			}

			switch v {
			case "c":
				sawC = true
				if !slices.Contains(s.Available(), "c") {
					t.Fatalf("seed %d draw %d: c left the available pool", seed, i)
				}
			case "a", "b":
				if drawnSinceRefill[v] {
					t.Fatalf("seed %d draw %d: %q drawn twice before refill", seed, i, v)
				}
				drawnSinceRefill[v] = true
				if len(drawnSinceRefill) == 2 {
					if len(s.Used()) != 0 || s.SingleUseRemaining() != 2 {
						t.Fatalf("seed %d draw %d: no refill after both single-use values, used = %v", seed, i, s.Used())
					}
					drawnSinceRefill = map[string]bool{}
				} else if diff := cmp.Diff([]string{v + `\s`}, s.Used()); diff != "" {
					t.Fatalf("seed %d draw %d: Used() mismatch (-want +got):\n%s", seed, i, diff)
				}
			default:
				t.Fatalf("seed %d draw %d: Draw() = %q", seed, i, v)
			}
		}

		if !sawC {
			t.Errorf("seed %d: c never drawn in 100 draws", seed)
		}
	}
}

func TestSlot_AllSingleUseCycles(t *testing.T) {
	s := mustSlot(t, "S", []string{`x\s`, `y\s`, `z\s`})
	rng := testRand(7)

	for cycle := range 10 {
		var got []string
		for range 3 {
			got = append(got, s.Draw(rng))
		}
		slices.Sort(got)
		if diff := cmp.Diff([]string{"x", "y", "z"}, got); diff != "" {
			t.Fatalf("cycle %d is not a permutation (-want +got):\n%s", cycle, diff)
		}
		if len(s.Available()) != 3 {
			t.Fatalf("cycle %d: Available() = %v, want all three values", cycle, s.Available())
		}
	}
}

func TestSlot_Hooks(t *testing.T) {
	s := mustSlot(t, "S", []string{`x\s`, `y\s`})
	draws, singleUseDraws, refills := 0, 0, 0
	s.onDraw = func(name string, singleUse bool) {
		if name != "S" {
			t.Errorf("onDraw slot = %q, want S", name)
		}
		draws++
		if singleUse {
			singleUseDraws++
		}
	}
	s.onRefill = func(string) { refills++ }

	rng := testRand(3)
	for range 6 {
		s.Draw(rng)
	}

	if draws != 6 || singleUseDraws != 6 {
		t.Errorf("draws = %d (single-use %d), want 6 (6)", draws, singleUseDraws)
	}
	if refills != 3 {
		t.Errorf("refills = %d, want 3", refills)
	}
}

func TestSlot_InspectionReturnsCopies(t *testing.T) {
	values := []string{"a", `b\s`}
	s := mustSlot(t, "S", values)
	values[0] = "changed"

	avail := s.Available()
	avail[0] = "mutated"

	if got := s.Available()[0]; got != "a" {
		t.Errorf("Available()[0] = %q, want %q", got, "a")
	}
	if s.Name() != "S" {
		t.Errorf("Name() = %q, want %q", s.Name(), "S")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.SingleUseRemaining() != 1 {
		t.Errorf("SingleUseRemaining() = %d, want 1", s.SingleUseRemaining())
	}
}
