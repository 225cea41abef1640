package kinetics_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lpaez/dosim/internal/dose"
	"github.com/lpaez/dosim/internal/kinetics"
	"github.com/lpaez/dosim/internal/solve"
)

func run(params kinetics.Params, pattern dose.Pattern, x0 solve.State, tMax float64) *solve.Trajectory {
	GinkgoHelper()

	model, err := kinetics.New(params, pattern)
	Expect(err).NotTo(HaveOccurred())
	grid, err := solve.UniformGrid(tMax, 500)
	Expect(err).NotTo(HaveOccurred())

	sv := solve.New(solve.NewRK45(), solve.DefaultOptions())
	traj, err := sv.Run(context.Background(), model, x0, grid)
	Expect(err).NotTo(HaveOccurred())
	return traj
}

var _ = Describe("Params", func() {
	DescribeTable("validation",
		func(p kinetics.Params, ok bool) {
			err := p.Validate()
			if ok {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(kinetics.ErrParams))
			}
		},
		Entry("typical rates", kinetics.Params{Ke: 0.5, Alpha: 0.3, Beta: 0.1}, true),
		Entry("zero alpha and beta", kinetics.Params{Ke: 0.3}, true),
		Entry("zero ke", kinetics.Params{Alpha: 0.3, Beta: 0.1}, false),
		Entry("negative ke", kinetics.Params{Ke: -0.5, Alpha: 0.3, Beta: 0.1}, false),
		Entry("negative alpha", kinetics.Params{Ke: 0.5, Alpha: -0.1, Beta: 0.1}, false),
		Entry("negative beta", kinetics.Params{Ke: 0.5, Alpha: 0.3, Beta: -0.1}, false),
		Entry("nan ke", kinetics.Params{Ke: math.NaN(), Alpha: 0.3, Beta: 0.1}, false),
		Entry("infinite alpha", kinetics.Params{Ke: 0.5, Alpha: math.Inf(1), Beta: 0.1}, false),
	)
})

var _ = Describe("Model", func() {
	It("rejects invalid parameters at construction", func() {
		_, err := kinetics.New(kinetics.Params{Ke: -1}, dose.None{})
		Expect(err).To(MatchError(kinetics.ErrParams))
	})

	It("evaluates the intake at the exact requested time", func() {
		pattern, err := dose.NewPeriodic(5, 5)
		Expect(err).NotTo(HaveOccurred())
		model, err := kinetics.New(kinetics.Params{Ke: 0.5, Alpha: 0.3, Beta: 0.1}, pattern)
		Expect(err).NotTo(HaveOccurred())

		inside := model.Derive(solve.State{0, 0}, 5.05)
		Expect(inside[kinetics.IndexConc]).To(Equal(5.0))
		Expect(inside[kinetics.IndexTol]).To(BeNumerically("~", 1.5, 1e-12))

		outside := model.Derive(solve.State{0, 0}, 4.95)
		Expect(outside[kinetics.IndexConc]).To(BeZero())
		Expect(outside[kinetics.IndexTol]).To(BeZero())
	})

	It("does not mutate the state it is given", func() {
		model, err := kinetics.New(kinetics.Params{Ke: 0.5, Alpha: 0.3, Beta: 0.1}, dose.None{})
		Expect(err).NotTo(HaveOccurred())

		x := solve.State{10, 2}
		model.Derive(x, 0)
		Expect(x).To(Equal(solve.State{10, 2}))
	})

	It("defaults a nil pattern to no intake", func() {
		model, err := kinetics.New(kinetics.Params{Ke: 0.5, Alpha: 0.3, Beta: 0.1}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Pattern().Kind()).To(Equal(dose.KindNone))
	})
})

var _ = Describe("Single dose decay", func() {
	params := kinetics.Params{Ke: 0.5, Alpha: 0.3, Beta: 0.1}

	It("matches the closed-form exponentials", func() {
		traj := run(params, dose.None{}, solve.State{10, 2}, 50)

		for _, i := range []int{0, 100, 250, 499} {
			tm := traj.Times[i]
			Expect(traj.States[i][kinetics.IndexConc]).To(
				BeNumerically("~", 10*math.Exp(-0.5*tm), 1e-5))
			Expect(traj.States[i][kinetics.IndexTol]).To(
				BeNumerically("~", 2*math.Exp(-0.1*tm), 1e-5))
		}
	})

	It("decays monotonically toward zero", func() {
		traj := run(params, dose.None{}, solve.State{10, 2}, 50)

		conc := traj.Component(kinetics.IndexConc)
		for i := 1; i < len(conc); i++ {
			Expect(conc[i]).To(BeNumerically("<=", conc[i-1]))
		}
		Expect(traj.Final()[kinetics.IndexConc]).To(BeNumerically("<", 1e-6))
	})
})

var _ = Describe("Constant intake", func() {
	params := kinetics.Params{Ke: 0.3, Alpha: 0.2, Beta: 0.05}

	It("approaches the fixed point from below", func() {
		pattern, err := dose.NewConstant(1.0)
		Expect(err).NotTo(HaveOccurred())
		traj := run(params, pattern, solve.State{0, 0}, 50)

		cStar := 1.0 / params.Ke
		tStar := params.Alpha / params.Beta

		final := traj.Final()
		Expect(final[kinetics.IndexConc]).To(
			BeNumerically("~", cStar*(1-math.Exp(-params.Ke*50)), 1e-5))
		Expect(final[kinetics.IndexTol]).To(
			BeNumerically("~", tStar*(1-math.Exp(-params.Beta*50)), 1e-5))

		conc := traj.Component(kinetics.IndexConc)
		for i := 1; i < len(conc); i++ {
			Expect(conc[i]).To(BeNumerically(">=", conc[i-1]-1e-9))
			Expect(conc[i]).To(BeNumerically("<=", cStar+1e-9))
		}
	})
})

var _ = Describe("Linear ramp", func() {
	It("grows without bound toward the moving asymptote", func() {
		pattern, err := dose.NewLinear(0.2)
		Expect(err).NotTo(HaveOccurred())
		traj := run(kinetics.Params{Ke: 0.5, Alpha: 0.3, Beta: 0.1}, pattern, solve.State{0, 0}, 50)

		conc := traj.Component(kinetics.IndexConc)
		Expect(conc[499]).To(BeNumerically(">", conc[250]))
		Expect(conc[250]).To(BeNumerically(">", conc[100]))

		// dC/dt = -ke*C + a*t settles onto (a/ke)*t - a/ke^2
		Expect(conc[499]).To(BeNumerically("~", 0.2/0.5*50-0.2/0.25, 0.01))

		// tolerance keeps a visible e^(-beta*t) transient at t=50
		tol := traj.Component(kinetics.IndexTol)
		Expect(tol[499]).To(BeNumerically("~", 0.6*50-6+6*math.Exp(-0.1*50), 1e-4))
	})
})

var _ = Describe("Periodic bursts", func() {
	params := kinetics.Params{Ke: 0.5, Alpha: 0.3, Beta: 0.1}

	It("raises concentration across burst windows and clears in between", func() {
		pattern, err := dose.NewPeriodic(5, 5)
		Expect(err).NotTo(HaveOccurred())
		traj := run(params, pattern, solve.State{0, 0}, 50)

		conc := traj.Component(kinetics.IndexConc)

		// samples 50 and 51 straddle the window after t=5
		Expect(conc[51]).To(BeNumerically(">", conc[49]))

		// pure clearance between the windows at t=5 and t=10
		for i := 53; i < 100; i++ {
			Expect(conc[i]).To(BeNumerically("<", conc[i-1]))
		}

		for i, c := range conc {
			Expect(c).To(BeNumerically(">=", 0), "negative concentration at sample %d", i)
		}
		Expect(traj.Final()[kinetics.IndexConc]).To(BeNumerically(">", 0))
	})

	It("is deterministic across repeated runs", func() {
		pattern, err := dose.NewPeriodic(5, 5)
		Expect(err).NotTo(HaveOccurred())

		a := run(params, pattern, solve.State{0, 0}, 50)
		b := run(params, pattern, solve.State{0, 0}, 50)
		Expect(a.States).To(Equal(b.States))
		Expect(a.Steps).To(Equal(b.Steps))
	})
})

var _ = Describe("DefaultInitialState", func() {
	It("loads a single dose only for the none pattern", func() {
		Expect(kinetics.DefaultInitialState(dose.None{})).To(Equal(solve.State{10, 2}))
		Expect(kinetics.DefaultInitialState(nil)).To(Equal(solve.State{10, 2}))

		c, err := dose.NewConstant(1.0)
		Expect(err).NotTo(HaveOccurred())
		Expect(kinetics.DefaultInitialState(c)).To(Equal(solve.State{0, 0}))

		l, err := dose.NewLinear(0.2)
		Expect(err).NotTo(HaveOccurred())
		Expect(kinetics.DefaultInitialState(l)).To(Equal(solve.State{0, 0}))
	})
})
