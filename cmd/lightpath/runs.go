package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/export"
	"github.com/san-kum/lightpath/internal/physics"
	"github.com/san-kum/lightpath/internal/sim"
	"github.com/san-kum/lightpath/internal/storage"
	"github.com/san-kum/lightpath/internal/viz"
)

func radiusGraph(values []float64, caption string) string {
	return asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func criticalFor(mass float64) float64 {
	return physics.FieldParams{Mass: mass}.CriticalImpact()
}

// rings returns the horizon and photon-sphere radii drawn for a regime.
// The Newtonian field has neither.
func rings(regime string, p physics.FieldParams) (horizon, photonSphere float64) {
	if regime == config.RegimeNewtonian {
		return 0, 0
	}
	return p.HorizonRadius(), p.PhotonSphereRadius()
}

type storedRun struct {
	meta    *storage.RunMetadata
	samples []sim.Sample
}

func (r storedRun) result() *sim.Result {
	res := &sim.Result{
		Samples:     r.samples,
		Termination: r.meta.Termination,
		Steps:       r.meta.Steps,
		Final:       r.meta.Final,
		Metrics:     r.meta.Metrics,
	}
	if r.meta.ClosestApproach != nil {
		res.ClosestApproach = *r.meta.ClosestApproach
	}
	return res
}

func (r storedRun) rings() (float64, float64) {
	return rings(r.meta.Regime, physics.FieldParams{Mass: r.meta.Mass, Spin: r.meta.Spin})
}

func loadRun(id string) (storedRun, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return storedRun{}, err
	}
	samples, err := st.LoadSamples(id)
	if err != nil {
		return storedRun{}, err
	}
	if len(samples) == 0 {
		return storedRun{}, fmt.Errorf("run %s has no samples", id)
	}
	return storedRun{meta: meta, samples: samples}, nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tREGIME\tINTEG\tTIME\tTERMINATION\tSTEPS\tCLOSEST")
			for _, run := range runs {
				closest := "-"
				if run.ClosestApproach != nil {
					closest = fmt.Sprintf("%.4f", *run.ClosestApproach)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					run.ID,
					run.Regime,
					run.Integrator,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Termination,
					run.Steps,
					closest,
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := loadRun(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("run: %s\n", run.meta.ID)
			fmt.Printf("regime: %s (%s)\n", run.meta.Regime, run.meta.Integrator)
			fmt.Printf("termination: %s after %d steps\n\n", run.meta.Termination, run.meta.Steps)

			horizon, photon := run.rings()
			canvas := viz.NewCanvas(80, 24)
			view := viz.Fit(canvas, run.samples, max(horizon, photon))
			canvas.Circle(view, horizon)
			canvas.Circle(view, photon)
			canvas.DrawPath(view, run.samples)
			fmt.Println(canvas.String())

			radii := make([]float64, len(run.samples))
			for i, s := range run.samples {
				radii[i] = s.R
			}
			fmt.Println(radiusGraph(radii, "r vs sample"))
			return nil
		},
	}
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a stored run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportRun(os.Stdout, args[0])
		},
	}
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write the samples of a stored run as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := storage.New(dataDir).LoadSamples(args[0])
			if err != nil {
				return err
			}
			return storage.ExportCSV(os.Stdout, &sim.Result{Samples: samples})
		},
	}
}

func newSVGCmd() *cobra.Command {
	var (
		output        string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "svg [run_id...]",
		Short: "draw stored runs as an SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := export.SVGOptions{Width: width, Height: height}
			paths := make([]export.Path, 0, len(args))
			for _, id := range args {
				run, err := loadRun(id)
				if err != nil {
					return err
				}
				h, p := run.rings()
				opts.Horizon = max(opts.Horizon, h)
				opts.PhotonSphere = max(opts.PhotonSphere, p)
				paths = append(paths, export.Path{
					Label:   fmt.Sprintf("%s %s: %s", run.meta.Regime, run.meta.Integrator, run.meta.Termination),
					Samples: run.samples,
				})
			}

			svg := export.PathsToSVG(paths, opts)
			if output == "" {
				_, err := fmt.Println(svg)
				return err
			}
			if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
				return err
			}
			logger.Info("svg written", "path", output, "runs", len(paths))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 800, "image height")
	return cmd
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay [run_id]",
		Short: "animate a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := loadRun(args[0])
			if err != nil {
				return err
			}
			horizon, photon := run.rings()
			title := fmt.Sprintf("%s · %s", run.meta.Regime, run.meta.Integrator)
			p := tea.NewProgram(viz.NewReplay(title, run.result(), horizon, photon), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
