// Package dynamo provides the core contracts shared by the light-ray
// integration engine.
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: flat vector holding one representation of a ray
//   - [System]: right-hand side dX/dt = f(X, t), where t is time or azimuth
//   - [Field]: a System whose state can be located in the equatorial plane
//   - [Integrator]: fixed-step numerical stepper
//   - [Invariant]: quantity conserved by the exact flow (drift diagnostics)
//
// # Example
//
//	field := physics.NewSchwarzschildGeodesic(physics.FieldParams{Mass: 1})
//	sim := sim.New(field, integrators.NewRK4())
//	result, _ := sim.Run(x0, cfg)
//
// # Thread Safety
//
// Fields are read-only once built and may be shared. Integrators keep
// scratch buffers and must not be shared between goroutines; use one
// instance per run.
package dynamo
