package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gomlx/gomlx/backends"
	_ "github.com/gomlx/gomlx/backends/simplego"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/SsinghBh/PINN-lab/internal/analysis"
	"github.com/SsinghBh/PINN-lab/internal/config"
	"github.com/SsinghBh/PINN-lab/internal/export"
	"github.com/SsinghBh/PINN-lab/internal/integrators"
	"github.com/SsinghBh/PINN-lab/internal/ode"
	"github.com/SsinghBh/PINN-lab/internal/pinn"
	"github.com/SsinghBh/PINN-lab/internal/storage"
	"github.com/SsinghBh/PINN-lab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	// Problem parameters
	mass      float64
	damping   float64
	stiffness float64
	horizon   float64
	x0        float64
	v0        float64
	forcing   string
	amplitude float64
	omega     float64
	onset     float64
	// Training parameters
	steps        int
	learningRate float64
	seed         int64
	hiddenLayers int
	hiddenWidth  int
	collocation  int
	strategy     string
	// Evaluation grid resolution
	evalPoints int
	// SVG output for phase plots
	svgFile  string
	svgScale float64
	// Comparison integrator
	integrator string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pinnlab",
		Short: "physics-informed neural network lab for the damped oscillator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pinnlab", "data directory")

	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "train a network on the oscillator ODE",
		RunE:  trainRun,
	}
	addTrainFlags(trainCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot predicted trajectory and loss curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write the x(t) curve to an SVG file")

	residualCmd := &cobra.Command{
		Use:   "residual [run_id]",
		Short: "plot ODE residuals over the horizon",
		Args:  cobra.ExactArgs(1),
		RunE:  residualRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the predicted trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	evalCmd := &cobra.Command{
		Use:   "eval [run_id]",
		Short: "accuracy metrics against the closed-form solution",
		Args:  cobra.ExactArgs(1),
		RunE:  evalRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [run_id]",
		Short: "compare the network against a numerical integrator",
		Args:  cobra.ExactArgs(1),
		RunE:  compareRun,
	}
	compareCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of the predicted trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().StringVar(&svgFile, "svg", "", "write the portrait to an SVG file")
	phaseCmd.Flags().Float64Var(&svgScale, "svg-scale", 4.0, "SVG dot scale")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the predicted trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in problem presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "train with a live loss view",
		RunE:  liveRun,
	}
	addTrainFlags(liveCmd)

	rootCmd.AddCommand(trainCmd, listCmd, plotCmd, residualCmd, analyzeCmd, evalCmd, compareCmd, phaseCmd, exportCmd, exportCSVCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTrainFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&mass, "mass", 1.0, "oscillator mass")
	cmd.Flags().Float64Var(&damping, "damping", 0.2, "damping coefficient")
	cmd.Flags().Float64Var(&stiffness, "stiffness", 1.0, "spring stiffness")
	cmd.Flags().Float64Var(&horizon, "horizon", 20.0, "time horizon")
	cmd.Flags().Float64Var(&x0, "x0", 0.0, "initial position")
	cmd.Flags().Float64Var(&v0, "v0", 1.0, "initial velocity")
	cmd.Flags().StringVar(&forcing, "forcing", "none", "forcing (none, sine, step)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "forcing amplitude")
	cmd.Flags().Float64Var(&omega, "omega", 1.0, "sine forcing frequency")
	cmd.Flags().Float64Var(&onset, "onset", 0.0, "step forcing onset time")
	cmd.Flags().IntVar(&steps, "steps", 20000, "training steps")
	cmd.Flags().Float64Var(&learningRate, "lr", 1e-3, "learning rate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&hiddenLayers, "hidden-layers", 3, "hidden layers")
	cmd.Flags().IntVar(&hiddenWidth, "hidden-width", 32, "hidden layer width")
	cmd.Flags().IntVar(&collocation, "collocation", 1000, "collocation points per step")
	cmd.Flags().StringVar(&strategy, "strategy", "uniform", "collocation sampling (uniform, random)")
	cmd.Flags().IntVar(&evalPoints, "eval-points", 512, "evaluation grid resolution")
}

// resolveConfig layers preset, config file, and explicit flags, with
// flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mass") {
		cfg.Problem.Mass = mass
	}
	if cmd.Flags().Changed("damping") {
		cfg.Problem.Damping = damping
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Problem.Stiffness = stiffness
	}
	if cmd.Flags().Changed("horizon") {
		cfg.Problem.Horizon = horizon
	}
	if cmd.Flags().Changed("x0") {
		cfg.Problem.X0 = x0
	}
	if cmd.Flags().Changed("v0") {
		cfg.Problem.V0 = v0
	}
	if cmd.Flags().Changed("forcing") {
		cfg.Problem.Forcing.Kind = forcing
	}
	if cmd.Flags().Changed("amplitude") {
		cfg.Problem.Forcing.Amplitude = amplitude
	}
	if cmd.Flags().Changed("omega") {
		cfg.Problem.Forcing.Omega = omega
	}
	if cmd.Flags().Changed("onset") {
		cfg.Problem.Forcing.Onset = onset
	}
	if cmd.Flags().Changed("steps") {
		cfg.Training.Steps = steps
	}
	if cmd.Flags().Changed("lr") {
		cfg.Training.LearningRate = learningRate
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("hidden-layers") {
		cfg.Network.HiddenLayers = hiddenLayers
	}
	if cmd.Flags().Changed("hidden-width") {
		cfg.Network.HiddenWidth = hiddenWidth
	}
	if cmd.Flags().Changed("collocation") {
		cfg.Sampling.Collocation = collocation
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Sampling.Strategy = strategy
	}

	return cfg, nil
}

func newTrainer(cfg *config.Config) (*pinn.Trainer, error) {
	prob, err := cfg.Oscillator()
	if err != nil {
		return nil, err
	}
	smp, err := cfg.Sampler()
	if err != nil {
		return nil, err
	}
	backend, err := backends.New()
	if err != nil {
		return nil, errors.Wrap(err, "creating backend")
	}
	return pinn.NewTrainer(backend, prob, cfg.NetworkConfig(), cfg.TrainConfig(), smp)
}

// evaluation is everything derived from a trained network on the
// evaluation grid.
type evaluation struct {
	trajectory *storage.Trajectory
	residT     []float64
	residR1    []float64
	residR2    []float64
	metrics    map[string]float64
}

func evaluate(trainer *pinn.Trainer, cfg *config.Config) (*evaluation, error) {
	prob, err := cfg.Oscillator()
	if err != nil {
		return nil, err
	}
	smp, err := cfg.Sampler()
	if err != nil {
		return nil, err
	}

	grid := smp.Grid(evalPoints)

	pred, err := trainer.Predictor()
	if err != nil {
		return nil, err
	}
	xs, vs, err := pred.Predict(grid)
	if err != nil {
		return nil, err
	}

	ev := &evaluation{
		trajectory: &storage.Trajectory{Times: grid, X: xs, V: vs},
		metrics:    map[string]float64{},
	}

	r1, r2, err := trainer.Residuals(grid)
	if err != nil {
		return nil, err
	}
	ev.residT, ev.residR1, ev.residR2 = grid, r1, r2

	rs := analysis.SummarizeResiduals(r1, r2)
	ev.metrics["max_residual_r1"] = rs.MaxR1
	ev.metrics["max_residual_r2"] = rs.MaxR2
	ev.metrics["mean_residual_r1"] = rs.MeanR1
	ev.metrics["mean_residual_r2"] = rs.MeanR2
	ev.metrics["ic_error_x"] = math.Abs(xs[0] - prob.X0)
	ev.metrics["ic_error_v"] = math.Abs(vs[0] - prob.V0)

	if prob.HasAnalytic() {
		xFn, vFn, err := prob.Analytic()
		if err != nil {
			return nil, err
		}
		exactX := make([]float64, len(grid))
		exactV := make([]float64, len(grid))
		for i, t := range grid {
			exactX[i] = xFn(t)
			exactV[i] = vFn(t)
		}
		ev.trajectory.XExact = exactX
		ev.trajectory.VExact = exactV

		if l2, err := analysis.L2RelativeError(xs, exactX); err == nil {
			ev.metrics["l2_rel_error_x"] = l2
		}
		if l2, err := analysis.L2RelativeError(vs, exactV); err == nil {
			ev.metrics["l2_rel_error_v"] = l2
		}
		if mx, err := analysis.MaxAbsError(xs, exactX); err == nil {
			ev.metrics["max_abs_error_x"] = mx
		}
	}

	return ev, nil
}

func saveRun(cfg *config.Config, hist *pinn.History, ev *evaluation) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}

	runID, err := st.Save(preset, cfg, hist, ev.trajectory, ev.metrics)
	if err != nil {
		return "", err
	}
	if err := st.SaveResiduals(runID, ev.residT, ev.residR1, ev.residR2); err != nil {
		return "", err
	}
	return runID, nil
}

func trainRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	trainer, err := newTrainer(cfg)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(cfg.Training.Steps,
		progressbar.OptionSetDescription("training"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
	)
	trainer.OnStep = func(s pinn.LossSample) {
		_ = bar.Set(s.Step + 1)
		bar.Describe(fmt.Sprintf("loss %.3e", s.Total))
	}

	start := time.Now()
	hist, err := trainer.Run()
	if err != nil {
		return err
	}
	_ = bar.Finish()
	fmt.Println()

	ev, err := evaluate(trainer, cfg)
	if err != nil {
		return err
	}

	runID, err := saveRun(cfg, hist, ev)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final loss: %.6e (residual %.6e, boundary %.6e)\n",
		hist.Final.Total, hist.Final.Residual, hist.Final.Boundary)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(ev.metrics) {
		fmt.Printf("  %s: %.6e\n", name, ev.metrics[name])
	}

	return nil
}

func liveRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	trainer, err := newTrainer(cfg)
	if err != nil {
		return err
	}

	events := make(chan viz.TrainEvent, 16)
	trainer.OnStep = func(s pinn.LossSample) {
		events <- viz.TrainEvent{Sample: s}
	}

	type trainResult struct {
		hist *pinn.History
		err  error
	}
	done := make(chan trainResult, 1)
	go func() {
		hist, err := trainer.Run()
		events <- viz.TrainEvent{Done: true, Err: err}
		close(events)
		done <- trainResult{hist, err}
	}()

	p := tea.NewProgram(viz.NewLiveModel(cfg.Training.Steps, events))
	if _, err := p.Run(); err != nil {
		return err
	}

	var res trainResult
	select {
	case res = <-done:
	default:
		// The view was quit mid-run; let training finish headless.
		go func() {
			for range events {
			}
		}()
		fmt.Println("finishing training...")
		res = <-done
	}
	if res.err != nil {
		return res.err
	}
	hist := res.hist

	ev, err := evaluate(trainer, cfg)
	if err != nil {
		return err
	}
	runID, err := saveRun(cfg, hist, ev)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final loss: %.6e\n", hist.Final.Total)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tFINAL_LOSS\tL2_ERR_X")

	for _, run := range runs {
		l2 := "-"
		if v, ok := run.Metrics["l2_rel_error_x"]; ok {
			l2 = fmt.Sprintf("%.4f", v)
		}
		presetName := run.Preset
		if presetName == "" {
			presetName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3e\t%s\n",
			run.ID,
			presetName,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Training.Steps,
			run.FinalLoss.Total,
			l2,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if svgFile != "" {
		svg := export.CurveToSVG(tr.Times, tr.X, 640, 320, "steelblue")
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("horizon: %.1fs, samples: %d\n\n", meta.Config.Problem.Horizon, len(tr.Times))

	graph := asciigraph.Plot(tr.X,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("x (position)"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(tr.V,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("v (velocity)"),
	)
	fmt.Println(graph)
	fmt.Println()

	if tr.HasExact() {
		errCurve := make([]float64, len(tr.Times))
		for i := range tr.Times {
			errCurve[i] = tr.X[i] - tr.XExact[i]
		}
		graph = asciigraph.Plot(errCurve,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("x error vs closed form"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	hist, err := st.LoadLoss(runID)
	if err == nil && len(hist.Samples) > 0 {
		logLoss := make([]float64, len(hist.Samples))
		for i, s := range hist.Samples {
			logLoss[i] = math.Log10(math.Max(s.Total, 1e-300))
		}
		graph = asciigraph.Plot(logLoss,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("log10 training loss"),
		)
		fmt.Println(graph)
	}

	return nil
}

func residualRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	_, r1, r2, err := st.LoadResiduals(runID)
	if err != nil {
		return err
	}
	if len(r1) == 0 {
		return fmt.Errorf("no residual data for run %s", runID)
	}

	graph := asciigraph.Plot(r1,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("r1 = dx/dt - v"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(r2,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("r2 = m dv/dt + c v + k x - F(t)"),
	)
	fmt.Println(graph)
	fmt.Println()

	rs := analysis.SummarizeResiduals(r1, r2)
	fmt.Printf("max |r1|: %.3e  mean |r1|: %.3e\n", rs.MaxR1, rs.MeanR1)
	fmt.Printf("max |r2|: %.3e  mean |r2|: %.3e\n", rs.MaxR2, rs.MeanR2)
	if rs.WithinTolerance(1e-2) {
		fmt.Println("residuals within 1e-2 everywhere")
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr.Times) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(tr.X)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x)"),
	)
	fmt.Println(graph)
	fmt.Println()

	dt := tr.Times[1] - tr.Times[0]
	freq := analysis.DominantFrequency(tr.X, 1.0/dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	prob, err := meta.Config.Oscillator()
	if err == nil && prob.Discriminant() < 0 {
		fmt.Printf("damped frequency (theory): %.3f hz\n", prob.DampedFrequency()/(2*math.Pi))
	}

	return nil
}

func evalRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("final loss: %.6e\n\n", meta.FinalLoss.Total)

	if len(meta.Metrics) == 0 {
		fmt.Println("no metrics recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range sortedKeys(meta.Metrics) {
		fmt.Fprintf(w, "%s\t%.6e\n", name, meta.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if hist, err := st.LoadLoss(runID); err == nil && len(hist.Samples) > 10 {
		if analysis.TrendNonIncreasing(hist.Totals(), 5, 0.05) {
			fmt.Println("\nloss trend: non-increasing (windowed)")
		} else {
			fmt.Println("\nloss trend: rose at some point; consider a lower learning rate")
		}
	}

	return nil
}

func compareRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr.Times) < 2 {
		return fmt.Errorf("no trajectory data for run %s", runID)
	}

	prob, err := meta.Config.Oscillator()
	if err != nil {
		return err
	}
	integ, err := integrators.ByName(integrator)
	if err != nil {
		return err
	}

	dt := tr.Times[1] - tr.Times[0]
	duration := tr.Times[len(tr.Times)-1]
	_, states, err := integrators.Solve(ode.FromOscillator(prob), integ, ode.State{prob.X0, prob.V0}, dt, duration)
	if err != nil {
		return err
	}

	n := len(tr.Times)
	if len(states) < n {
		n = len(states)
	}
	refX := make([]float64, n)
	refV := make([]float64, n)
	for i := 0; i < n; i++ {
		refX[i] = states[i][0]
		refV[i] = states[i][1]
	}

	l2, err := analysis.L2RelativeError(tr.X[:n], refX)
	if err != nil {
		return err
	}
	mx, err := analysis.MaxAbsError(tr.X[:n], refX)
	if err != nil {
		return err
	}

	fmt.Printf("network vs %s (dt=%.4f, duration=%.1fs)\n\n", integrator, dt, duration)

	graph := asciigraph.Plot(refX,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("x (%s)", integrator)),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(tr.X[:n],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("x (network)"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("l2 relative error: %.4e\n", l2)
	fmt.Printf("max abs error:     %.4e\n", mx)
	fmt.Printf("energy drift (%s):      %+.3e\n", integrator, analysis.EnergyDrift(prob.Mass, prob.Stiffness, refX, refV))
	fmt.Printf("energy drift (network): %+.3e\n", analysis.EnergyDrift(prob.Mass, prob.Stiffness, tr.X[:n], tr.V[:n]))

	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr.Times) == 0 {
		return fmt.Errorf("no trajectory data for run %s", runID)
	}

	canvas := viz.PhasePortrait(tr.X, tr.V, 70, 20)

	if svgFile != "" {
		svg := export.CanvasToSVG(canvas, svgScale)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}

	fmt.Printf("phase portrait: %s  (x horizontal, v vertical)\n\n", runID)
	fmt.Print(canvas.String())

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	hist, err := st.LoadLoss(runID)
	if err != nil {
		hist = nil
	}

	return storage.ExportJSON(os.Stdout, meta, tr, hist)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"t", "x_pred", "v_pred"}
	if tr.HasExact() {
		header = append(header, "x_exact", "v_exact")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range tr.Times {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'f', 6, 64),
			strconv.FormatFloat(tr.X[i], 'f', 6, 64),
			strconv.FormatFloat(tr.V[i], 'f', 6, 64),
		}
		if tr.HasExact() {
			row = append(row,
				strconv.FormatFloat(tr.XExact[i], 'f', 6, 64),
				strconv.FormatFloat(tr.VExact[i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
