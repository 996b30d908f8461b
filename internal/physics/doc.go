// Package physics provides the gravitational field models a light ray is
// integrated through.
//
// Each model implements [dynamo.Field]:
//
//   - [Newtonian]: inverse-square attraction, no horizon
//   - [Schwarzschild]: Cartesian approximation with a clamped horizon factor
//   - [SchwarzschildGeodesic]: exact null geodesic in inverse radius u = 1/r
//   - [Kerr]: Cartesian Schwarzschild plus a frame-drag term
//   - [KerrEquatorial]: simplified equatorial Kerr geodesic
//
// [Oscillator] is the harmonic reference system used to compare integrators.
//
// All models implement [dynamo.Configurable]. Models with a conserved
// quantity implement [dynamo.Invariant]:
//
//	field := physics.NewSchwarzschildGeodesic(physics.FieldParams{Mass: 1})
//	if inv, ok := any(field).(dynamo.Invariant); ok {
//	    q := inv.Invariant(state) // 1/b² along the exact flow
//	}
//
// # Near-horizon clamping
//
// The Cartesian Schwarzschild factor 1-2M/r and the Kerr Δ vanish at the
// horizon. Both are floored rather than allowed to divide by zero. This is
// an approximation and does not describe the physics inside the margin.
package physics
