package systems

import "math"

// The flow field is a deterministic composition of sines and cosines of elapsed time
// and the particle's fixed phase. It is not coherent noise: two particles with the same
// phase follow the same angle forever.

// FlowAngle returns the orbit angle of a particle at elapsed time t.
// warp scales the wobble added on top of the steady rotation.
func FlowAngle(phase, speed, warp, t float64) float64 {
	wobble := math.Sin(t*0.5+phase)*0.6 + math.Cos(t*0.8+phase*1.7)*0.4
	return phase + t*speed + warp*wobble
}

// OrbitRadius returns the working radius of a particle at elapsed time t.
func OrbitRadius(radius, amp, phase, warp, t float64) float64 {
	return radius + math.Sin(t*0.8+phase)*amp*warp
}

// Pulse returns the size multiplier of a particle at elapsed time t.
func Pulse(phase, amount, speed, t float64) float64 {
	return 1 + amount*math.Sin(t*speed+phase)
}
