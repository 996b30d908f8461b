// Package analysis provides parameter studies built on repeated runs.
//
//   - [PotentialPeak]: locate the maximum of the null effective potential
//   - [ImpactSweep]: fate of inbound rays across impact parameters
//   - [CriticalImpact]: bisect the capture/escape boundary
//   - [ParamSweep]: vary one field parameter, such as spin
//   - [Divergence]: where two recorded trajectories separate
//
// Sweeps fan out across goroutines with [dynamo.ParallelFor]. Every ray
// builds its own field and integrator.
//
//	b, _ := analysis.CriticalImpact(analysis.DefaultSweepOptions(), 4, 7, 1e-3)
//	// b ≈ √27 ≈ 5.196
package analysis
