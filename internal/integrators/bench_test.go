package integrators

import (
	"testing"

	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/physics"
)

func benchmarkStep(b *testing.B, integ dynamo.Integrator, dyn dynamo.System, x dynamo.State, dt float64) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, 0, dt)
	}
}

func BenchmarkEuler(b *testing.B) {
	benchmarkStep(b, NewEuler(), physics.NewOscillator(), dynamo.State{1, 0}, 0.01)
}

func BenchmarkRK4(b *testing.B) {
	benchmarkStep(b, NewRK4(), physics.NewOscillator(), dynamo.State{1, 0}, 0.01)
}

func BenchmarkLeapfrog(b *testing.B) {
	benchmarkStep(b, NewLeapfrog(), physics.NewOscillator(), dynamo.State{1, 0}, 0.01)
}

func BenchmarkRK4_Geodesic(b *testing.B) {
	g := physics.NewSchwarzschildGeodesic(physics.FieldParams{Mass: 1})
	benchmarkStep(b, NewRK4(), g, dynamo.State{0.1, 0.3, 0}, 1e-3)
}

func BenchmarkRK4_KerrEquatorial(b *testing.B) {
	k := physics.NewKerrEquatorial(physics.FieldParams{Mass: 1, Spin: 0.9})
	benchmarkStep(b, NewRK4(), k, dynamo.State{10, 0, -0.1, 4.5}, 1e-3)
}
