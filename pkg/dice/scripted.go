package dice

// Scripted is a Source that replays fixed draws, for tests.
// Intn values are returned as-is when they fit in [0,n) and reduced modulo n otherwise.
// When a script runs out, Intn returns 0 and Float64 returns 0.99 (fail every chance).
type Scripted struct {
	Ints   []int
	Floats []float64
}

// Ensure Scripted implements Source
var _ Source = (*Scripted)(nil)

// NewScripted builds a Scripted source from integer draws.
func NewScripted(ints ...int) *Scripted {
	return &Scripted{Ints: ints}
}

// WithFloats appends float draws and returns the source for chaining.
func (s *Scripted) WithFloats(floats ...float64) *Scripted {
	s.Floats = append(s.Floats, floats...)
	return s
}

func (s *Scripted) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		v = -v
	}
	return v % n
}

func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0.99
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// Remaining reports how many draws are left, so tests can assert a roll happened.
func (s *Scripted) Remaining() (ints, floats int) {
	return len(s.Ints), len(s.Floats)
}
