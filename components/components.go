// Package components defines ECS components for the particle field.
package components

// Motion holds the fixed per-particle parameters of the flow field.
// All values are chosen at creation and never change afterwards.
type Motion struct {
	Phase  float64 // Noise seed in [0, 2pi), desynchronizes oscillations
	Speed  float64 // Orbit angular speed, rad/s
	Radius float64 // Working orbit radius around the field center
	Amp    float64 // Orbit radius wobble amplitude, scaled by warp
}

// Appearance holds what the renderer needs to draw a particle.
type Appearance struct {
	Size       float64 // Base size before pulse
	ColorIndex int     // Index into the active palette
}
