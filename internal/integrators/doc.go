// Package integrators provides fixed-step steppers for [dynamo.System].
//
// [Euler] and [RK4] work on any state layout. [EulerCromer] and [Leapfrog]
// split the state into positions and velocities and therefore need a
// system implementing [dynamo.Canonical]; the runner rejects other pairings
// with [dynamo.ErrIncompatible].
//
// Integrators with scratch buffers are not safe for concurrent use.
package integrators
