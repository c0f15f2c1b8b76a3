package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/multibody/internal/analysis"
	"github.com/san-kum/multibody/internal/config"
	"github.com/san-kum/multibody/internal/control"
	"github.com/san-kum/multibody/internal/dynamics"
	"github.com/san-kum/multibody/internal/metrics"
	"github.com/san-kum/multibody/internal/scalar"
	"github.com/san-kum/multibody/internal/storage"
	"github.com/san-kum/multibody/internal/tui"
	"github.com/san-kum/multibody/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	seed       int64
	runs       int
	spread     float64
	exportPath string
	jointName  string
	showPlot   bool
	replay     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mbsim",
		Short: "multibody mechanism simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mbsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "mechanism config file (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one rollout and store the result",
		RunE:  runRollout,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().StringVar(&exportPath, "export", "", "also export the rollout as json")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "print coordinate charts afterwards")
	runCmd.Flags().BoolVar(&replay, "replay", false, "open the replay viewer afterwards")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run perturbed rollouts in parallel",
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of rollouts")
	ensembleCmd.Flags().Float64Var(&spread, "spread", 0.1, "initial velocity perturbation")
	ensembleCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "perturbation seed")

	jacobianCmd := &cobra.Command{
		Use:   "jacobian [joint]",
		Short: "print pose partials at the initial state",
		Args:  cobra.ExactArgs(1),
		RunE:  printJacobian,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a stored run's metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	configCmd := &cobra.Command{
		Use:   "config init [path]",
		Short: "write the default mechanism config",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "mechanism.yaml"
			if len(args) > 1 {
				path = args[1]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, jacobianCmd, listCmd, plotCmd, analyzeCmd, exportCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

type setup struct {
	cfg   *config.Config
	tree  *dynamics.Tree
	init  *dynamics.State
	plant *dynamics.Plant
	ctrl  dynamics.Controller
}

func buildSetup() (*setup, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	tree, err := cfg.BuildTree()
	if err != nil {
		return nil, err
	}
	init, err := cfg.InitialState(tree)
	if err != nil {
		return nil, err
	}

	plant := dynamics.NewPlant(tree.NumVelocities(),
		cfg.Plant.Inertia, cfg.Plant.Damping, cfg.Plant.Bias)

	var ctrl dynamics.Controller
	if cfg.Controller.Kind == "tracking" {
		ctrl, err = buildTracking(tree, cfg)
		if err != nil {
			return nil, err
		}
	}

	return &setup{cfg: cfg, tree: tree, init: init, plant: plant, ctrl: ctrl}, nil
}

func buildTracking(tree *dynamics.Tree, cfg *config.Config) (*control.Tracking, error) {
	gains := make(map[string]control.Gains, len(cfg.Controller.Gains))
	for name, g := range cfg.Controller.Gains {
		gains[name] = control.Gains{Kp: g.Kp, Ki: g.Ki, Kd: g.Kd, Targets: g.Targets}
	}
	return control.NewTracking(tree, gains)
}

func simConfig(cfg *config.Config) dynamics.Config {
	out := dynamics.Config{
		Dt:            cfg.Sim.Dt,
		Duration:      cfg.Sim.Duration,
		ValidateState: cfg.Sim.Validate,
	}
	if dt > 0 {
		out.Dt = dt
	}
	if duration > 0 {
		out.Duration = duration
	}
	return out
}

func runRollout(cmd *cobra.Command, args []string) error {
	su, err := buildSetup()
	if err != nil {
		return err
	}

	sim := dynamics.New(su.tree, su.plant, su.ctrl)
	sim.AddMetric(metrics.NewKineticEnergy(su.plant.Inertia))
	sim.AddMetric(metrics.NewControlEffort())
	sim.AddMetric(metrics.NewPeakRate())

	scfg := simConfig(su.cfg)
	fmt.Printf("running %s for %.2fs at dt=%.4fs...\n",
		su.cfg.Mechanism.Name, scfg.Duration, scfg.Dt)
	start := time.Now()

	result, err := sim.Run(context.Background(), su.init, scfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(su.cfg.Mechanism.Name, su.cfg.Controller.Kind,
		scfg.Dt, scfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if exportPath != "" {
		if err := storage.ExportJSON(exportPath, su.cfg.Mechanism.Name,
			su.cfg.Controller.Kind, scfg.Dt, scfg.Duration, result); err != nil {
			return err
		}
		fmt.Printf("exported %s\n", exportPath)
	}

	if showPlot {
		fmt.Println()
		fmt.Print(viz.PlotResult(result, 80, 8))
	}

	if replay {
		return tui.Run(su.tree, result, su.cfg.Mechanism.Name)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	su, err := buildSetup()
	if err != nil {
		return err
	}

	ens := dynamics.NewEnsemble(su.tree, su.plant, su.ctrl, runs)
	rng := rand.New(rand.NewSource(seed))
	perturbs := make([][]float64, runs)
	for i := range perturbs {
		row := make([]float64, su.tree.NumVelocities())
		for k := range row {
			row[k] = rng.NormFloat64() * spread
		}
		perturbs[i] = row
	}
	ens.Perturb = func(idx int, s *dynamics.State) {
		for k, dv := range perturbs[idx] {
			s.SetVelocity(k, s.Velocity(k)+scalar.Float(dv))
		}
	}
	if su.ctrl != nil {
		ctrls := make([]dynamics.Controller, runs)
		for i := range ctrls {
			c, err := buildTracking(su.tree, su.cfg)
			if err != nil {
				return err
			}
			ctrls[i] = c
		}
		ens.ControllerFactory = func(idx int) dynamics.Controller { return ctrls[idx] }
	}
	ens.MetricFactory = func(idx int) []dynamics.Metric {
		return []dynamics.Metric{
			metrics.NewKineticEnergy(su.plant.Inertia),
			metrics.NewControlEffort(),
			metrics.NewPeakRate(),
		}
	}

	scfg := simConfig(su.cfg)
	fmt.Printf("running %d perturbed rollouts of %s...\n", runs, su.cfg.Mechanism.Name)
	start := time.Now()

	results, err := ens.Run(context.Background(), su.init, scfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEPS\tKINETIC\tEFFORT\tPEAK RATE")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.6f\t%.6f\t%.6f\n", i, r.StepsTaken,
			r.Metrics["kinetic_energy"], r.Metrics["control_effort"], r.Metrics["peak_rate"])
	}
	return w.Flush()
}

func printJacobian(cmd *cobra.Command, args []string) error {
	jointName = args[0]

	su, err := buildSetup()
	if err != nil {
		return err
	}

	diff, err := dynamics.NewDifferentiator(su.tree)
	if err != nil {
		return err
	}

	cols, err := diff.AngularJacobian(su.init, jointName)
	if err != nil {
		return err
	}

	fmt.Printf("angular jacobian of %q at the initial state:\n", jointName)
	for k, col := range cols {
		fmt.Printf("  dw/dv%d = (%+.6f, %+.6f, %+.6f)\n", k, col.X, col.Y, col.Z)
	}

	for k := range cols {
		dR, dP, err := diff.PosePartial(su.init, jointName, k)
		if err != nil {
			return err
		}
		fmt.Printf("\ndX/dq%d:\n", k)
		for i := 0; i < 3; i++ {
			fmt.Printf("  [%+.6f %+.6f %+.6f]\n", dR[i][0], dR[i][1], dR[i][2])
		}
		fmt.Printf("  dp = (%+.6f, %+.6f, %+.6f)\n", dP.X, dP.Y, dP.Z)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stored, err := st.List()
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMECHANISM\tTIME\tDURATION\tDT\tCTRL\tSTEPS")
	for _, run := range stored {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Mechanism,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Controller,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadMeta(runID)
	if err != nil {
		return err
	}
	times, rows, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mechanism: %s\n", meta.Mechanism)
	fmt.Printf("samples: %d\n\n", len(times))

	numVars := len(rows[0])
	if numVars > 6 {
		numVars = 6
	}
	for idx := 0; idx < numVars; idx++ {
		data := make([]float64, len(rows))
		for i := range rows {
			if idx < len(rows[i]) {
				data[i] = rows[i][idx]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("column %d vs time", idx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadMeta(runID)
	if err != nil {
		return err
	}
	_, rows, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("mechanism: %s\n\n", meta.Mechanism)

	data := make([]float64, len(rows))
	for i := range rows {
		data[i] = rows[i][0]
	}

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps[:len(ps)/4],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (q0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, _ := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
