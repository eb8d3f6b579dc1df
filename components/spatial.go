package components

// Position represents a particle's position in field coordinates.
type Position struct {
	X, Y float64
}

// Velocity represents a particle's velocity in px/s.
type Velocity struct {
	X, Y float64
}
