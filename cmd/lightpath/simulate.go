package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/lightpath/internal/analysis"
	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/experiment"
	"github.com/san-kum/lightpath/internal/storage"
	"github.com/san-kum/lightpath/internal/viz"
)

func newRunCmd() *cobra.Command {
	var (
		rf         runFlags
		plot       bool
		noSave     bool
		saveConfig string
	)
	cmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "trace one ray and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				rf.preset = args[0]
			}
			cfg, err := rf.resolve(cmd)
			if err != nil {
				return err
			}

			res, err := experiment.New(cfg, registry, logger).Run()
			if err != nil {
				return err
			}

			fmt.Println(viz.RenderSummary(cfg, res))
			if plot {
				fmt.Println(radiusGraph(res.Radii(), "r vs step"))
			}

			if saveConfig != "" {
				if err := config.Save(saveConfig, cfg); err != nil {
					return err
				}
			}
			if noSave {
				return nil
			}
			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}
			id, err := st.Save(cfg, res)
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", id)
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().BoolVar(&plot, "plot", false, "plot the radius after the run")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this yaml file")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var (
		rf  runFlags
		tol float64
	)
	cmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run one launch with several integrators",
		Long:  "Runs the same launch once per integrator (default euler and rk4) and reports where the first two paths separate.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.resolve(cmd)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = []string{"euler", "rk4"}
			}

			runs, err := experiment.Compare(cfg, registry, logger, names)
			if err != nil {
				return err
			}

			fmt.Printf("regime %s, step %g, max steps %d\n\n", cfg.Regime, cfg.Step, cfg.MaxSteps)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INTEGRATOR\tTERMINATION\tSTEPS\tCLOSEST\tFINAL R\tDRIFT")
			for _, c := range runs {
				drift := "-"
				if v, ok := c.Result.Metrics["invariant_drift"]; ok {
					drift = fmt.Sprintf("%.3e", v)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.4f\t%s\n",
					c.Integrator, c.Result.Termination, c.Result.Steps,
					c.Result.ClosestApproach, c.Result.Final.R, drift)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(runs) >= 2 {
				sep := analysis.Divergence(runs[0].Result, runs[1].Result, tol)
				fmt.Printf("\n%s vs %s: max separation %.4g over %d samples", runs[0].Integrator, runs[1].Integrator, sep.Max, sep.Common)
				if sep.Index >= 0 {
					fmt.Printf(", beyond %g from sample %d\n", tol, sep.Index)
				} else {
					fmt.Printf(", never beyond %g\n", tol)
				}
			}
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().Float64Var(&tol, "tol", 0.1, "separation reported as divergence")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		opts     = analysis.DefaultSweepOptions()
		from, to float64
		n        int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "classify inbound geodesics over a range of impact parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			outcomes := analysis.ImpactSweep(opts, analysis.LinearImpacts(from, to, n))

			bc := criticalFor(opts.Mass)
			fmt.Printf("M = %g, r0 = %g, b_crit = %.4f\n\n", opts.Mass, opts.R0, bc)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "B\tB/B_CRIT\tFATE\tCLOSEST\tSTEPS")
			for _, o := range outcomes {
				if o.Err != nil {
					fmt.Fprintf(w, "%.4f\t%.3f\terror: %v\t\t\n", o.B, o.B/bc, o.Err)
					continue
				}
				fmt.Fprintf(w, "%.4f\t%.3f\t%s\t%.4f\t%d\n",
					o.B, o.B/bc, viz.TerminationStyle(o.Termination).Render(o.Termination.String()), o.ClosestApproach, o.Steps)
			}
			return w.Flush()
		},
	}
	registerSweepFlags(cmd, &opts)
	cmd.Flags().Float64Var(&from, "from", 4, "first impact parameter")
	cmd.Flags().Float64Var(&to, "to", 7, "last impact parameter")
	cmd.Flags().IntVar(&n, "n", 13, "number of impact parameters")
	return cmd
}

func newCriticalCmd() *cobra.Command {
	var (
		opts        = analysis.DefaultSweepOptions()
		lo, hi, tol float64
	)
	cmd := &cobra.Command{
		Use:   "critical",
		Short: "bisect the capture threshold in impact parameter",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := analysis.CriticalImpact(opts, lo, hi, tol)
			if err != nil {
				return err
			}
			want := criticalFor(opts.Mass)
			fmt.Printf("numerical b_crit: %.6f\n", b)
			fmt.Printf("sqrt(27) M:       %.6f\n", want)
			fmt.Printf("relative error:   %.3e\n", (b-want)/want)
			return nil
		},
	}
	registerSweepFlags(cmd, &opts)
	cmd.Flags().Float64Var(&lo, "lo", 4, "captured lower bracket")
	cmd.Flags().Float64Var(&hi, "hi", 7, "escaping upper bracket")
	cmd.Flags().Float64Var(&tol, "tol", 1e-4, "bracket width to stop at")
	return cmd
}

func registerSweepFlags(cmd *cobra.Command, opts *analysis.SweepOptions) {
	fs := cmd.Flags()
	fs.Float64Var(&opts.Mass, "mass", opts.Mass, "central mass M")
	fs.Float64Var(&opts.R0, "r0", opts.R0, "launch radius")
	fs.Float64Var(&opts.Step, "step", opts.Step, "dphi per step")
	fs.IntVar(&opts.MaxSteps, "max-steps", opts.MaxSteps, "step budget per ray")
	fs.Float64Var(&opts.Horizon, "horizon", 0, "capture radius (0 = 2M)")
}

func newScanCmd() *cobra.Command {
	var (
		rf     runFlags
		param  string
		lo, hi float64
		n      int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "repeat one launch while varying a field parameter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.resolve(cmd)
			if err != nil {
				return err
			}
			points, err := experiment.Scan(cfg, registry, logger, param, lo, hi, n)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tTERMINATION\tCLOSEST\tFINAL PHI\tSTEPS\n", strings.ToUpper(param))
			for _, p := range points {
				fmt.Fprintf(w, "%.4f\t%s\t%.4f\t%.4f\t%d\n", p.Param, p.Termination, p.ClosestApproach, p.FinalPhi, p.Steps)
			}
			return w.Flush()
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVar(&param, "param", "spin", "field parameter to vary")
	cmd.Flags().Float64Var(&lo, "lo", -0.9, "first value")
	cmd.Flags().Float64Var(&hi, "hi", 0.9, "last value")
	cmd.Flags().IntVar(&n, "n", 7, "number of values")
	return cmd
}

func newPotentialCmd() *cobra.Command {
	var (
		mass, rMin, rMax float64
		n                int
	)
	cmd := &cobra.Command{
		Use:   "potential",
		Short: "plot the photon effective potential and locate its peak",
		RunE: func(cmd *cobra.Command, args []string) error {
			curve := analysis.PotentialCurve(mass, rMin, rMax, n)
			vs := make([]float64, len(curve))
			for i, p := range curve {
				vs[i] = p.V
			}
			fmt.Println(radiusGraph(vs, fmt.Sprintf("V_eff(r), r in [%g, %g]", rMin, rMax)))

			peak := analysis.PotentialPeak(mass, rMin, rMax, n)
			fmt.Printf("\npeak at r = %.4f (V = %.5f), photon sphere 3M = %.4f\n", peak.R, peak.V, 3*mass)
			return nil
		},
	}
	cmd.Flags().Float64Var(&mass, "mass", 1, "central mass M")
	cmd.Flags().Float64Var(&rMin, "rmin", 2.1, "inner radius")
	cmd.Flags().Float64Var(&rMax, "rmax", 10, "outer radius")
	cmd.Flags().IntVar(&n, "n", 2000, "samples")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [regime]",
		Short: "list presets, optionally for one regime",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regime := ""
			if len(args) == 1 {
				regime = args[0]
			}
			names := config.ListPresets(regime)
			if len(names) == 0 {
				fmt.Printf("no presets for regime: %s (regimes: %s)\n", regime, strings.Join(registry.ListRegimes(), ", "))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tREGIME\tINTEGRATOR\tMASS\tSPIN")
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\n", name, p.Regime, p.Integrator, p.Mass, p.Spin)
			}
			return w.Flush()
		},
	}
}
