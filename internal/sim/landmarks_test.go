package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lightpath/internal/coords"
	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/integrators"
	"github.com/san-kum/lightpath/internal/physics"
	"github.com/san-kum/lightpath/internal/sim"
)

var unit = physics.FieldParams{Mass: 1}

func geodesicRun(b float64, dir coords.Direction, th sim.Thresholds) *sim.Result {
	start, err := coords.GeodesicStart(10, 0, b, unit.Mass, dir)
	Expect(err).NotTo(HaveOccurred())

	cfg := sim.DefaultConfig()
	cfg.Thresholds = th
	res, err := sim.New(physics.NewSchwarzschildGeodesic(unit), integrators.NewRK4()).Run(start.GeodesicState(), cfg)
	Expect(err).NotTo(HaveOccurred())
	return res
}

var _ = Describe("Schwarzschild null geodesics", func() {
	tracked := sim.Thresholds{Horizon: unit.SchwarzschildRadius(), PhotonSphere: unit.PhotonSphereRadius()}
	horizonOnly := sim.Thresholds{Horizon: unit.SchwarzschildRadius()}

	It("lets an outbound ray with b = 3 escape without nearing the photon sphere", func() {
		res := geodesicRun(3, coords.Outbound, tracked)

		Expect(res.Termination).To(Equal(sim.Escaped))
		Expect(res.ClosestApproach).To(BeNumerically(">", 1.5*unit.Mass))
		Expect(res.ClosestApproach).To(BeNumerically("~", 10, 1e-9))
	})

	It("captures an inbound ray with b = 3 at the photon sphere", func() {
		res := geodesicRun(3, coords.Inbound, tracked)

		Expect(res.Termination).To(Equal(sim.PhotonSphereCrossed))
		Expect(res.ClosestApproach).To(BeNumerically("<=", unit.PhotonSphereRadius()))
	})

	It("carries a captured ray through to the horizon when the photon sphere is not tracked", func() {
		res := geodesicRun(3, coords.Inbound, horizonOnly)

		Expect(res.Termination).To(Equal(sim.HorizonCapture))
		Expect(res.ClosestApproach).To(BeNumerically("<=", 2))
	})

	DescribeTable("splits capture from escape at b = √27 M",
		func(b float64, want sim.Termination) {
			res := geodesicRun(b, coords.Inbound, horizonOnly)
			Expect(res.Termination).To(Equal(want))
			if want == sim.Escaped {
				Expect(res.ClosestApproach).To(BeNumerically(">", unit.PhotonSphereRadius()))
			}
		},
		Entry("b = 5.1", 5.1, sim.HorizonCapture),
		Entry("b = 5.3", 5.3, sim.Escaped),
		Entry("b = 6", 6.0, sim.Escaped),
		Entry("b = 7", 7.0, sim.Escaped),
	)

	It("turns a b = 6 ray around at the root of 1/b² = u²(1-2Mu)", func() {
		res := geodesicRun(6, coords.Inbound, tracked)

		Expect(res.Termination).To(Equal(sim.Escaped))
		Expect(res.ClosestApproach).To(BeNumerically("~", 4.45, 0.1))
	})

	It("conserves the first integral under RK4", func() {
		res := geodesicRun(6, coords.Inbound, horizonOnly)
		inv := physics.NewSchwarzschildGeodesic(unit).Invariant(res.FinalState)

		Expect(inv).To(BeNumerically("~", 1.0/36, 1e-8))
	})
})

var _ = Describe("Kerr equatorial frame dragging", func() {
	run := func(spin float64) *sim.Result {
		p := physics.FieldParams{Mass: 1, Spin: spin}
		x0, err := coords.KerrStart(10, 0, 4.5, coords.Inbound)
		Expect(err).NotTo(HaveOccurred())

		cfg := sim.DefaultConfig()
		cfg.MaxSteps = 50000
		cfg.Thresholds = sim.Thresholds{Horizon: 1.05 * p.HorizonRadius()}
		res, err := sim.New(physics.NewKerrEquatorial(p), integrators.NewRK4()).Run(x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		return res
	}

	var pro, retro *sim.Result

	BeforeEach(func() {
		pro, retro = run(0.5), run(-0.5)
	})

	It("captures both orientations", func() {
		Expect(pro.Termination).To(Equal(sim.HorizonCapture))
		Expect(retro.Termination).To(Equal(sim.HorizonCapture))
	})

	It("keeps the radial evolution identical under a -> -a", func() {
		Expect(pro.Steps).To(Equal(retro.Steps))
		Expect(pro.Radii()).To(Equal(retro.Radii()))
	})
})

var _ = Describe("Kerr equatorial azimuth against the static field", func() {
	// One capture radius for every spin, so only the field differs.
	finalPhi := func(spin float64) float64 {
		x0, err := coords.KerrStart(10, 0, 4.5, coords.Inbound)
		Expect(err).NotTo(HaveOccurred())

		cfg := sim.DefaultConfig()
		cfg.MaxSteps = 50000
		cfg.Thresholds = sim.Thresholds{Horizon: 2.1}
		res, err := sim.New(physics.NewKerrEquatorial(physics.FieldParams{Mass: 1, Spin: spin}), integrators.NewRK4()).Run(x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Termination).To(Equal(sim.HorizonCapture))
		return res.FinalState[1]
	}

	var static float64

	BeforeEach(func() {
		static = finalPhi(0)
	})

	It("deviates in opposite directions for small opposite spins", func() {
		pro, retro := finalPhi(0.05)-static, finalPhi(-0.05)-static
		Expect(pro).NotTo(BeZero())
		Expect(retro).NotTo(BeZero())
		Expect(math.Signbit(pro)).NotTo(Equal(math.Signbit(retro)))
		Expect(pro).To(BeNumerically("<", 0))
	})

	It("is dominated by the a² terms at |a| = 0.5", func() {
		pro, retro := finalPhi(0.5)-static, finalPhi(-0.5)-static
		Expect(pro).To(BeNumerically("<", 0))
		Expect(retro).To(BeNumerically("<", 0))
		Expect(pro).To(BeNumerically("<", retro))
	})
})

var _ = Describe("step budget", func() {
	cartesian := coords.CartesianState{X: -10, Y: 1, VX: 1, VY: 0}

	DescribeTable("reaches a threshold within 4000 steps at dt = 0.01",
		func(field dynamo.Field, integ dynamo.Integrator, x0 dynamo.State, th sim.Thresholds) {
			cfg := sim.DefaultConfig()
			cfg.Thresholds = th

			res, err := sim.New(field, integ).Run(x0, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Termination).To(BeElementOf(sim.HorizonCapture, sim.Escaped))
			Expect(res.Steps).To(BeNumerically("<", cfg.MaxSteps))
		},
		Entry("newtonian",
			physics.NewNewtonian(unit), integrators.NewRK4(), cartesian.State(),
			sim.Thresholds{Horizon: 1.5}),
		Entry("schwarzschild euler",
			physics.NewSchwarzschild(unit), integrators.NewEuler(), cartesian.State(),
			sim.Thresholds{Horizon: 1.05 * unit.SchwarzschildRadius()}),
		Entry("schwarzschild rk4",
			physics.NewSchwarzschild(unit), integrators.NewRK4(), cartesian.State(),
			sim.Thresholds{Horizon: 1.05 * unit.SchwarzschildRadius()}),
		Entry("kerr cartesian",
			physics.NewKerr(physics.FieldParams{Mass: 1, Spin: 0.5}), integrators.NewRK4(), cartesian.State(),
			sim.Thresholds{Horizon: 1.05 * unit.SchwarzschildRadius()}),
		Entry("geodesic captured",
			physics.NewSchwarzschildGeodesic(unit), integrators.NewRK4(), mustGeodesic(3),
			sim.Thresholds{Horizon: unit.SchwarzschildRadius()}),
		Entry("geodesic escaping",
			physics.NewSchwarzschildGeodesic(unit), integrators.NewRK4(), mustGeodesic(7),
			sim.Thresholds{Horizon: unit.SchwarzschildRadius()}),
	)
})

func mustGeodesic(b float64) dynamo.State {
	start, err := coords.GeodesicStart(10, 0, b, 1, coords.Inbound)
	if err != nil {
		panic(err)
	}
	return start.GeodesicState()
}
