// Package dice isolates every random draw the game makes behind a seedable source
// so combat, spawns and loot can be replayed deterministically.
package dice

import (
	"time"

	"github.com/jwebster45206/d20"
)

// chanceFaces is the die size used to turn a roll into a fraction in [0,1).
const chanceFaces = 10000

// Source is the draw interface the game rolls against.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Ensure Roller satisfies Source
var _ Source = (*Roller)(nil)

// Roller is the production Source, backed by a d20 roller.
type Roller struct {
	r *d20.Roller
}

// New returns a seeded roller. A zero seed picks one from the clock.
func New(seed int64) *Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Roller{r: d20.NewRoller(seed)}
}

// Intn rolls a single n-sided die and shifts it onto [0,n).
func (r *Roller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	out, err := r.r.Dice(1, uint(n)).Roll()
	if err != nil {
		return 0
	}
	return out.Value - 1
}

// Float64 rolls a high-face die and scales it onto [0,1).
func (r *Roller) Float64() float64 {
	out, err := r.r.Dice(1, chanceFaces).Roll()
	if err != nil {
		return 0
	}
	return float64(out.Value-1) / chanceFaces
}

// Range rolls one die sized to the inclusive range [min, max] with a flat base
// modifier, so 5-15 becomes 1d11+4.
func (r *Roller) Range(min, max int) (d20.RollOutcome, error) {
	return r.r.Dice(1, uint(max-min+1)).WithModifier("base", min-1).Roll()
}

// Between draws uniformly from the inclusive range [min, max].
// Swapped bounds are tolerated; a degenerate range returns min without drawing.
func Between(src Source, min, max int) int {
	if max < min {
		min, max = max, min
	}
	if max == min {
		return min
	}
	if r, ok := src.(*Roller); ok {
		if out, err := r.Range(min, max); err == nil {
			return out.Value
		}
	}
	return min + src.Intn(max-min+1)
}

// Chance reports whether a draw in [0,1) falls below p.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Pick returns a uniformly chosen element, or the zero value for an empty slice.
func Pick[T any](src Source, xs []T) T {
	var zero T
	if len(xs) == 0 {
		return zero
	}
	return xs[src.Intn(len(xs))]
}
