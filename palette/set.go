package palette

// Set is an ordered list of palettes with one selected.
type Set struct {
	palettes []Palette
	current  int
}

// NewSet creates a set selecting the first palette. palettes must not be empty.
func NewSet(palettes []Palette) *Set {
	if len(palettes) == 0 {
		panic("palette: empty set")
	}
	return &Set{palettes: palettes}
}

// Current returns the selected palette.
func (s *Set) Current() Palette {
	return s.palettes[s.current]
}

// Index returns the selected palette index.
func (s *Set) Index() int {
	return s.current
}

// Len returns the number of palettes.
func (s *Set) Len() int {
	return len(s.palettes)
}

// At returns palette i, wrapping out-of-range indices.
func (s *Set) At(i int) Palette {
	return s.palettes[s.wrap(i)]
}

// Select makes palette i current, wrapping out-of-range indices, and returns it.
func (s *Set) Select(i int) Palette {
	s.current = s.wrap(i)
	return s.Current()
}

// Next selects the following palette.
func (s *Set) Next() Palette {
	return s.Select(s.current + 1)
}

func (s *Set) wrap(i int) int {
	n := len(s.palettes)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
